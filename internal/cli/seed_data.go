package cli

import "learnplay/internal/domain"

// seedCatalog is the static Learn & Play catalog used when no Postgres
// backing store is configured, and the payload of the `seed` subcommand.
func seedCatalog() domain.Catalog {
	return domain.Catalog{
		Projects: []domain.Project{
			{
				ID:            "proj-portfolio",
				Title:         "Personal Portfolio Website",
				Description:   "Build a personal portfolio site from scratch with semantic HTML, modern CSS, and a touch of JavaScript.",
				ImageRef:      "portfolio-hero",
				TotalSegments: 3,
			},
			{
				ID:            "proj-todo",
				Title:         "To-Do List App",
				Description:   "Create an interactive to-do list that stores tasks in the browser and teaches DOM manipulation.",
				ImageRef:      "todo-hero",
				TotalSegments: 3,
			},
			{
				ID:            "proj-weather",
				Title:         "Weather Dashboard",
				Description:   "Fetch live weather data from a public API and render it on a responsive dashboard.",
				ImageRef:      "weather-hero",
				TotalSegments: 2,
			},
		},
		Segments: []domain.Segment{
			{
				ID:           "seg-portfolio-structure",
				ProjectID:    "proj-portfolio",
				Title:        "Page Structure",
				Instructions: "Lay out the header, about, projects, and contact sections using semantic HTML elements.",
				Description:  "Learners scaffold the page with header, main, section, and footer tags.",
			},
			{
				ID:           "seg-portfolio-styling",
				ProjectID:    "proj-portfolio",
				Title:        "Styling with CSS",
				Instructions: "Style the sections with flexbox, a color palette, and responsive breakpoints.",
				Description:  "Learners apply flexbox layout and media queries to make the page responsive.",
			},
			{
				ID:           "seg-portfolio-interactivity",
				ProjectID:    "proj-portfolio",
				Title:        "Adding Interactivity",
				Instructions: "Add a theme toggle and smooth scrolling navigation with JavaScript.",
				Description:  "Learners wire click handlers and toggle a dark-mode class on the body.",
			},
			{
				ID:           "seg-todo-render",
				ProjectID:    "proj-todo",
				Title:        "Rendering Tasks",
				Instructions: "Render a list of task objects into the DOM from a JavaScript array.",
				Description:  "Learners map an array of tasks to list elements and append them to the page.",
			},
			{
				ID:           "seg-todo-events",
				ProjectID:    "proj-todo",
				Title:        "Handling Events",
				Instructions: "Add tasks from an input field and toggle completion on click.",
				Description:  "Learners attach submit and click handlers that update the task array.",
			},
			{
				ID:           "seg-todo-storage",
				ProjectID:    "proj-todo",
				Title:        "Persisting Tasks",
				Instructions: "Save the task list to localStorage and restore it on page load.",
				Description:  "Learners serialize tasks to JSON and hydrate the list on startup.",
			},
			{
				ID:           "seg-weather-fetch",
				ProjectID:    "proj-weather",
				Title:        "Fetching Weather Data",
				Instructions: "Call a weather API with fetch and parse the JSON response.",
				Description:  "Learners use fetch with async/await and handle request failures.",
			},
			{
				ID:           "seg-weather-display",
				ProjectID:    "proj-weather",
				Title:        "Displaying the Forecast",
				Instructions: "Render temperature, conditions, and a five-day forecast grid.",
				Description:  "Learners transform API data into cards and format the units.",
			},
		},
		Quizzes: []domain.Quiz{
			{
				ProjectID: "proj-portfolio",
				Questions: []domain.Question{
					{
						ID:            "q-portfolio-1",
						Prompt:        "Which element best wraps the primary content of a page?",
						Options:       []string{"<div>", "<main>", "<span>", "<footer>"},
						CorrectAnswer: "<main>",
					},
					{
						ID:            "q-portfolio-2",
						Prompt:        "Which CSS property enables a flex layout?",
						Options:       []string{"position: flex", "display: flex", "flex: row", "layout: flex"},
						CorrectAnswer: "display: flex",
					},
					{
						ID:            "q-portfolio-3",
						Prompt:        "What does a media query control?",
						Options:       []string{"API requests", "Styles per viewport size", "Image compression", "Event bubbling"},
						CorrectAnswer: "Styles per viewport size",
					},
				},
			},
			{
				ProjectID: "proj-todo",
				Questions: []domain.Question{
					{
						ID:            "q-todo-1",
						Prompt:        "Which method adds an element to the end of an array?",
						Options:       []string{"push", "pop", "shift", "slice"},
						CorrectAnswer: "push",
					},
					{
						ID:            "q-todo-2",
						Prompt:        "How do you store an object in localStorage?",
						Options:       []string{"Directly as an object", "As a JSON string", "As a number", "It cannot be stored"},
						CorrectAnswer: "As a JSON string",
					},
					{
						ID:            "q-todo-3",
						Prompt:        "Which event fires when a form is submitted?",
						Options:       []string{"click", "change", "submit", "load"},
						CorrectAnswer: "submit",
					},
				},
			},
			{
				ProjectID: "proj-weather",
				Questions: []domain.Question{
					{
						ID:            "q-weather-1",
						Prompt:        "What does fetch return?",
						Options:       []string{"A JSON object", "A Promise", "A string", "An array"},
						CorrectAnswer: "A Promise",
					},
					{
						ID:            "q-weather-2",
						Prompt:        "Which keyword pauses an async function until a Promise settles?",
						Options:       []string{"wait", "await", "defer", "yield"},
						CorrectAnswer: "await",
					},
				},
			},
		},
		Roster: []domain.LeaderboardEntry{
			{Name: "Maya Chen", Points: 480, Badges: []domain.BadgeKind{domain.BadgeFirstSteps, domain.BadgeGettingStarted, domain.BadgeQuizWhiz}},
			{Name: "Liam Patel", Points: 350, Badges: []domain.BadgeKind{domain.BadgeFirstSteps, domain.BadgeStreakStarter}},
			{Name: "Sofia Reyes", Points: 290, Badges: []domain.BadgeKind{domain.BadgeFirstSteps, domain.BadgeGettingStarted}},
			{Name: "Noah Kim", Points: 150, Badges: []domain.BadgeKind{domain.BadgeFirstSteps}},
			{Name: "Emma Novak", Points: 80, Badges: nil},
		},
	}
}

// seedUser is the local learner created at application start.
func seedUser() domain.User {
	return domain.User{
		ID:          "user-local",
		DisplayName: "Alex Doe",
		AvatarRef:   "avatar-alex",
	}
}
