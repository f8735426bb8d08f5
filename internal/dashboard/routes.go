package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lorefile/lore/internal/importer"
	"github.com/lorefile/lore/internal/insight"
	"github.com/lorefile/lore/internal/session"
	"github.com/lorefile/lore/internal/task"
	"gorm.io/gorm"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, gdb *gorm.DB) {
	router.GET("/", handleIndex(gdb))

	api := router.Group("/api")
	api.GET("/tasks", handleTasks(gdb))
	api.GET("/insights", handleInsights(gdb))
	api.GET("/sessions", handleSessions(gdb))
	api.GET("/search", handleSearch(gdb))
	api.GET("/stats", handleStats(gdb))
	api.GET("/imports", handleImports(gdb))
}

func handleIndex(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := Stats(gdb)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.HTML(http.StatusOK, "index.html", gin.H{"stats": stats})
	}
}

func handleTasks(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := task.List(gdb, task.ListFilters{
			Status:   c.Query("status"),
			Priority: c.Query("priority"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

func handleInsights(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		insights, err := insight.List(gdb, insight.ListFilters{
			Status: c.Query("status"),
			Type:   c.Query("type"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, insights)
	}
}

func handleSessions(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := session.List(gdb, session.ListFilters{
			Date:    c.Query("date"),
			TaskID:  c.Query("task"),
			Outcome: c.Query("outcome"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}

func handleSearch(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
			return
		}

		insights, err := insight.Search(gdb, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		tasks, err := task.Search(gdb, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"insights": insights, "tasks": tasks})
	}
}

func handleStats(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := Stats(gdb)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func handleImports(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		runs, err := importer.Runs(gdb)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, runs)
	}
}
