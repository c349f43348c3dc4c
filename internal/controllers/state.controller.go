package controllers

import (
	"net/http"

	"diskwarden/internal/services"

	"github.com/gin-gonic/gin"
)

// GetState returns the full last-completed storage-health snapshot.
func GetState(c *gin.Context) {
	monitor := services.GetMonitor()
	if monitor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "monitor not initialized"})
		return
	}
	c.JSON(http.StatusOK, monitor.StateCached())
}

// GetDisks returns only the per-disk capacity samples.
func GetDisks(c *gin.Context) {
	monitor := services.GetMonitor()
	if monitor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "monitor not initialized"})
		return
	}
	c.JSON(http.StatusOK, monitor.StateCached().Disks)
}

// GetAlert returns the aggregate storage space alert.
func GetAlert(c *gin.Context) {
	monitor := services.GetMonitor()
	if monitor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "monitor not initialized"})
		return
	}
	state := monitor.StateCached()
	c.JSON(http.StatusOK, gin.H{
		"storage_space_alert": state.StorageSpaceAlert,
		"refreshed_at":        state.RefreshedAt,
	})
}

// Healthz is the unauthenticated liveness endpoint.
func Healthz(c *gin.Context) {
	monitor := services.GetMonitor()
	if monitor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	state := monitor.StateCached()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": state.Version,
		"uptime":  state.Uptime.String(),
	})
}
