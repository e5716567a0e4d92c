package http

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"learnplay/internal/app"
	"learnplay/internal/hint"
	"github.com/gorilla/websocket"
)

// WSHandler exposes the progress store's transition intents over a
// websocket. Every dispatch pushes a fresh snapshot to the client via the
// store subscription; hints are generated off the read loop so a slow
// model call never blocks intents.
type WSHandler struct {
	store    *app.ProgressStore
	policy   *app.RefreshPolicy
	hints    *hint.Service
	upgrader websocket.Upgrader
}

func NewWSHandler(store *app.ProgressStore, policy *app.RefreshPolicy, hints *hint.Service) *WSHandler {
	return &WSHandler{
		store:  store,
		policy: policy,
		hints:  hints,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type segmentPayload struct {
	ProjectID string `json:"projectId"`
	SegmentID string `json:"segmentId"`
}

type quizPayload struct {
	ProjectID      string `json:"projectId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

type hintPayload struct {
	ProjectID string `json:"projectId"`
	SegmentID string `json:"segmentId"`
	Attempt   string `json:"attempt"`
	Request   string `json:"request"`
}

type proposalPayload struct {
	Interests string `json:"interests"`
}

type summaryPayload struct {
	ProjectID    string `json:"projectId"`
	KeyLearnings string `json:"keyLearnings"`
}

type suggestionPayload struct {
	ProjectID          string   `json:"projectId"`
	LearnerSkills      []string `json:"learnerSkills"`
	LearnerPreferences string   `json:"learnerPreferences"`
	CurrentSegment     string   `json:"currentSegment"`
	PastAttempts       []string `json:"pastAttempts"`
}

type adaptationPayload struct {
	suggestionPayload
	SegmentSuggestions []string `json:"segmentSuggestions"`
	Feedback           string   `json:"feedback"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and wires the connection into the store.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.store.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})
	var asyncWrites sync.WaitGroup

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "snapshot", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "completeSegment":
			var payload segmentPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid completeSegment payload")
				continue
			}
			h.store.Dispatch(app.Transition{
				Kind:      app.CompleteSegment,
				ProjectID: payload.ProjectID,
				SegmentID: payload.SegmentID,
			})
		case "submitQuiz":
			var payload quizPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid submitQuiz payload")
				continue
			}
			h.store.Dispatch(app.Transition{
				Kind:           app.SubmitQuiz,
				ProjectID:      payload.ProjectID,
				Score:          payload.Score,
				TotalQuestions: payload.TotalQuestions,
			})
		case "resetQuiz":
			var payload segmentPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid resetQuiz payload")
				continue
			}
			h.store.Dispatch(app.Transition{Kind: app.ResetQuiz, ProjectID: payload.ProjectID})
		case "refreshLeaderboard":
			snap, refreshed := h.store.RefreshLeaderboard(r.Context(), h.policy)
			if !refreshed {
				// Still stale-tolerant period; reply with the current view.
				select {
				case send <- outboundMessage[any]{Type: "snapshot", Payload: snap}:
				case <-closeSignals:
				}
			}
		case "hint":
			var payload hintPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid hint payload")
				continue
			}
			asyncWrites.Add(1)
			go func() {
				defer asyncWrites.Done()
				h.generateHint(r, payload, send, closeSignals)
			}()
		case "proposeProject":
			var payload proposalPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid proposeProject payload")
				continue
			}
			asyncWrites.Add(1)
			go func() {
				defer asyncWrites.Done()
				h.proposeProject(r, payload, send, closeSignals)
			}()
		case "summarizeProject":
			var payload summaryPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid summarizeProject payload")
				continue
			}
			asyncWrites.Add(1)
			go func() {
				defer asyncWrites.Done()
				h.summarizeProject(r, payload, send, closeSignals)
			}()
		case "suggestSegments":
			var payload suggestionPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid suggestSegments payload")
				continue
			}
			asyncWrites.Add(1)
			go func() {
				defer asyncWrites.Done()
				h.suggestSegments(r, payload, send, closeSignals)
			}()
		case "adaptSegments":
			var payload adaptationPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid adaptSegments payload")
				continue
			}
			asyncWrites.Add(1)
			go func() {
				defer asyncWrites.Done()
				h.adaptSegments(r, payload, send, closeSignals)
			}()
		default:
			send <- errorMessage("unsupported message type")
		}
	}

	close(closeSignals)
	<-updatesDone
	asyncWrites.Wait()
	close(send)
	<-writerDone
}

// generateHint resolves the segment from the current snapshot and asks the
// hint service. The service guarantees a fallback response, so the client
// always receives a hint message.
func (h *WSHandler) generateHint(r *http.Request, payload hintPayload, send chan<- outboundMessage[any], closeSignals <-chan struct{}) {
	description := ""
	for _, segment := range h.store.Snapshot().Segments {
		if segment.ID == payload.SegmentID && segment.ProjectID == payload.ProjectID {
			description = segment.Description
			break
		}
	}

	understanding := "Beginner, struggling with the basic implementation."
	request := payload.Request
	if request == "" {
		request = "I am stuck and need a hint to proceed."
	}

	result := h.hints.GenerateHint(r.Context(), hint.HintContext{
		SegmentDescription:   description,
		LearnerActions:       payload.Attempt,
		LearnerUnderstanding: understanding,
		HintRequest:          request,
	})

	select {
	case send <- outboundMessage[any]{Type: "hint", Payload: result}:
	case <-closeSignals:
	}
}

// proposeProject forwards a project idea request. Unlike hints there is no
// fallback, so a model failure surfaces as an error message.
func (h *WSHandler) proposeProject(r *http.Request, payload proposalPayload, send chan<- outboundMessage[any], closeSignals <-chan struct{}) {
	proposal, err := h.hints.ProposeProject(r.Context(), payload.Interests)
	if err != nil {
		log.Printf("project proposal failed: %v", err)
		select {
		case send <- errorMessage("project proposal unavailable"):
		case <-closeSignals:
		}
		return
	}
	select {
	case send <- outboundMessage[any]{Type: "proposal", Payload: proposal}:
	case <-closeSignals:
	}
}

// suggestSegments resolves the project description from the snapshot and
// asks the model which segments the learner should tackle next.
func (h *WSHandler) suggestSegments(r *http.Request, payload suggestionPayload, send chan<- outboundMessage[any], closeSignals <-chan struct{}) {
	suggestions, err := h.hints.SuggestSegments(r.Context(), h.suggestionInput(payload))
	if err != nil {
		log.Printf("segment suggestions failed: %v", err)
		select {
		case send <- errorMessage("segment suggestions unavailable"):
		case <-closeSignals:
		}
		return
	}
	select {
	case send <- outboundMessage[any]{Type: "suggestions", Payload: suggestions}:
	case <-closeSignals:
	}
}

// adaptSegments asks the model to adjust suggested segments to the
// learner's level.
func (h *WSHandler) adaptSegments(r *http.Request, payload adaptationPayload, send chan<- outboundMessage[any], closeSignals <-chan struct{}) {
	in := hint.AdaptationInput{
		SuggestionInput:    h.suggestionInput(payload.suggestionPayload),
		SegmentSuggestions: payload.SegmentSuggestions,
		Feedback:           payload.Feedback,
	}
	adaptation, err := h.hints.AdaptSegments(r.Context(), in)
	if err != nil {
		log.Printf("segment adaptation failed: %v", err)
		select {
		case send <- errorMessage("segment adaptation unavailable"):
		case <-closeSignals:
		}
		return
	}
	select {
	case send <- outboundMessage[any]{Type: "adaptation", Payload: adaptation}:
	case <-closeSignals:
	}
}

func (h *WSHandler) suggestionInput(payload suggestionPayload) hint.SuggestionInput {
	in := hint.SuggestionInput{
		LearnerSkills:      payload.LearnerSkills,
		LearnerPreferences: payload.LearnerPreferences,
		CurrentSegment:     payload.CurrentSegment,
		PastAttempts:       payload.PastAttempts,
	}
	for _, project := range h.store.Snapshot().Projects {
		if project.ID == payload.ProjectID {
			in.ProjectDescription = project.Description
			break
		}
	}
	return in
}

// summarizeProject recaps a project's progress from the current snapshot:
// the project's description plus the titles of its completed segments.
func (h *WSHandler) summarizeProject(r *http.Request, payload summaryPayload, send chan<- outboundMessage[any], closeSignals <-chan struct{}) {
	snap := h.store.Snapshot()

	in := hint.SummaryInput{KeyLearnings: payload.KeyLearnings}
	for _, project := range snap.Projects {
		if project.ID == payload.ProjectID {
			in.ProjectName = project.Title
			in.ProjectDescription = project.Description
			break
		}
	}
	for _, segment := range snap.Segments {
		if segment.ProjectID != payload.ProjectID {
			continue
		}
		if _, done := snap.CurrentUser.Stats.CompletedSegmentIDs[segment.ID]; done {
			in.CompletedSegments = append(in.CompletedSegments, segment.Title)
		}
	}

	summary, err := h.hints.SummarizeProject(r.Context(), in)
	if err != nil {
		log.Printf("project summary failed: %v", err)
		select {
		case send <- errorMessage("project summary unavailable"):
		case <-closeSignals:
		}
		return
	}
	select {
	case send <- outboundMessage[any]{Type: "summary", Payload: summary}:
	case <-closeSignals:
	}
}

func errorMessage(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}
