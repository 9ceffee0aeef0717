package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bu6wer8/student-services-V2/internals/middleware"
	"github.com/bu6wer8/student-services-V2/internals/models"
)

// AdminController serves the back-office views over the relational store.
// These are thin queries; order lifecycle rules live outside this service.
type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// Dashboard returns the landing-page counters.
func (a *AdminController) Dashboard(c *gin.Context) {
	var totalOrders, pendingOrders, totalCustomers int64
	a.DB.Model(&models.Order{}).Count(&totalOrders)
	a.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)
	a.DB.Model(&models.Customer{}).Count(&totalCustomers)

	var recentOrders []models.Order
	a.DB.Order("created_at desc").Limit(10).Find(&recentOrders)

	c.JSON(http.StatusOK, gin.H{
		"admin_user":      c.GetString(middleware.PrincipalKey),
		"total_orders":    totalOrders,
		"pending_orders":  pendingOrders,
		"total_customers": totalCustomers,
		"recent_orders":   recentOrders,
	})
}

// ListOrders returns orders, optionally filtered by status.
func (a *AdminController) ListOrders(c *gin.Context) {
	query := a.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns one order by id.
func (a *AdminController) GetOrder(c *gin.Context) {
	var order models.Order
	if err := a.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status.
func (a *AdminController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Missing status"})
		return
	}

	switch body.Status {
	case models.OrderStatusPending, models.OrderStatusInProgress,
		models.OrderStatusCompleted, models.OrderStatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unknown status"})
		return
	}

	result := a.DB.Model(&models.Order{}).Where("id = ?", c.Param("id")).
		Update("status", body.Status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Status updated"})
}

// ListCustomers returns all customers, newest first.
func (a *AdminController) ListCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := a.DB.Order("created_at desc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// ListPayments returns all payments, newest first.
func (a *AdminController) ListPayments(c *gin.Context) {
	var payments []models.Payment
	if err := a.DB.Order("created_at desc").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// Analytics aggregates the numbers the analytics page charts.
func (a *AdminController) Analytics(c *gin.Context) {
	var totalRevenue float64
	a.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Select("coalesce(sum(amount), 0)").Scan(&totalRevenue)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusCount
	a.DB.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").Scan(&byStatus)

	var ordersThisMonth int64
	monthStart := time.Now().AddDate(0, 0, -30)
	a.DB.Model(&models.Order{}).Where("created_at > ?", monthStart).Count(&ordersThisMonth)

	c.JSON(http.StatusOK, gin.H{
		"total_revenue":       totalRevenue,
		"orders_by_status":    byStatus,
		"orders_last_30_days": ordersThisMonth,
	})
}
