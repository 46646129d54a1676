package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/config"
	intdb "hoponhub/internal/db"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "hoponhub backend berjalan"})
}

// DBCheck pings the database and reports which tables exist.
func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database belum terhubung"})
		return
	}
	ctx := c.Request.Context()
	if err := config.PingDB(ctx, h.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal ping database: " + err.Error()})
		return
	}
	tables := gin.H{}
	for _, t := range intdb.Tables {
		tables[t] = intdb.HasTable(ctx, h.DB, t)
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "tables": tables})
}

// InitDB handles POST /api/init-db: wipes and reloads the sample data.
func (h *Handler) InitDB(c *gin.Context) {
	sum, err := h.Seeder.Seed(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Database initialized successfully",
		"buses":   sum.Buses,
		"routes":  sum.Routes,
		"seats":   sum.Seats,
	})
}
