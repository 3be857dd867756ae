package categorizer

import "go-gig-router/internal/models"

// DefaultKeywords is the keyword set of every routable category. "other"
// has none: it is what a posting falls back to.
func DefaultKeywords() map[models.Category][]string {
	return map[models.Category][]string{
		models.CategoryFrontend: {
			// core web
			"html5", "css3", "javascript", "typescript",
			// react
			"react", "next.js", "nextjs", "react native", "redux", "context api",
			"react navigation", "react native paper",
			// ui libraries
			"tailwind", "tailwindcss", "sass", "scss", "material ui", "mui",
			"shadcn", "shadcn/ui", "responsive design", "mobile development",
			// storage
			"asyncstorage", "local storage", "session storage",
			// data fetching
			"rest api", "graphql", "fetch", "axios",
			// vcs
			"git", "github", "gitlab", "bitbucket",
			"frontend", "ui", "ux", "web design", "web development",
			"front-end", "front end", "responsive", "mobile-first", "mobile first",
			"ui/ux", "ui design", "ux design", "user interface", "landing page",
			"web app", "web application", "single page application", "spa",
			"progressive web app", "pwa", "web accessibility", "a11y",
		},
		models.CategoryBackend: {
			"backend", "api", "server", "database", "node", "python", "java", "php", "ruby",
			"django", "flask", "express", "spring", "spring boot", "laravel", "rails",
			"graphql", "rest api", "restful", "microservices", "serverless", "lambda",
			"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "dynamodb",
			"sql", "nosql", "orm", "jpa", "hibernate", "prisma", "sequelize",
			"authentication", "authorization", "jwt", "oauth", "oauth2", "openid",
			"websocket", "socket.io", "grpc", "backend developer", "backend development",
			"backend engineer", "backend engineering", "api development", "api design",
			"database design", "database administration", "dba", "data modeling",
			"backend architecture", "system design", "scalability", "performance optimization",
		},
		models.CategoryFullstack: {
			"full stack", "fullstack", "full-stack", "full stack developer", "wordpress", "web application",
		},
		models.CategoryAutomation: {
			"automation", "automated", "automate", "bot", "script", "workflow automation", "process automation",
		},
		models.CategoryScraping: {
			"scraping", "scrapper", "scraper", "data extraction", "web scraping",
		},
	}
}
