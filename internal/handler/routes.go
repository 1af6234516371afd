package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Users      *UserHandler
	Projects   *ProjectHandler
	Milestones *MilestoneHandler
	Tasks      *TaskHandler
	Sprints    *SprintHandler
}

// RegisterRoutes mounts the API. Everything except register and login goes
// through auth.
func RegisterRoutes(r gin.IRouter, h Handlers, auth gin.HandlerFunc) {
	// Public routes
	r.POST("/users/register", h.Users.Register)
	r.POST("/users/login", h.Users.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(auth)
	{
		authorized.GET("/users/me", h.Users.Me)
		authorized.PATCH("/users/password/reset", h.Users.ResetPassword)

		// Project routes
		authorized.POST("/projects/", h.Projects.Create)
		authorized.GET("/projects/", h.Projects.GetAll)
		authorized.GET("/projects/:id", h.Projects.GetByID)
		authorized.PATCH("/projects/:id", h.Projects.Update)
		authorized.DELETE("/projects/:id", h.Projects.Delete)

		// Membership routes
		authorized.POST("/projects/:id/join", h.Projects.Join)
		authorized.DELETE("/projects/:id/leave", h.Projects.Leave)
		authorized.GET("/projects/:id/users", h.Projects.GetUsers)
		authorized.POST("/projects/:id/users", h.Projects.AddUser)
		authorized.DELETE("/projects/:id/users", h.Projects.RemoveUser)

		// Milestone routes
		authorized.POST("/milestones/", h.Milestones.Create)
		authorized.GET("/milestones/:id", h.Milestones.GetByID)
		authorized.PATCH("/milestones/:id", h.Milestones.Update)
		authorized.DELETE("/milestones/:id", h.Milestones.Delete)

		// Task routes
		authorized.POST("/tasks/", h.Tasks.Create)
		authorized.GET("/tasks/:id", h.Tasks.GetByID)
		authorized.PATCH("/tasks/:id", h.Tasks.Update)
		authorized.DELETE("/tasks/:id", h.Tasks.Delete)

		// Sprint routes
		authorized.POST("/sprints/", h.Sprints.Create)
		authorized.GET("/sprints/:id", h.Sprints.GetByID)
		authorized.PATCH("/sprints/:id", h.Sprints.Update)
		authorized.DELETE("/sprints/:id", h.Sprints.Delete)
	}
}
