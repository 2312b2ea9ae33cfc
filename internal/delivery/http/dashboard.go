package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
	"cms-backend/internal/usecase/service"
)

type Dashboard struct {
	dashboardUseCase usecase.Dashboard
	userUseCase      usecase.User
	authManager      utils.Auth
	now              func() time.Time
}

func NewDashboard(dashboardUseCase usecase.Dashboard, userUseCase usecase.User, authManager utils.Auth) *Dashboard {
	return &Dashboard{
		dashboardUseCase: dashboardUseCase,
		userUseCase:      userUseCase,
		authManager:      authManager,
		now:              time.Now,
	}
}

func (d *Dashboard) Configure(server *echo.Group) {
	server.GET("", d.GetDashboard)
	server.GET("/analytics", d.GetAnalytics)
}

func (d *Dashboard) ConfigureAdmin(server *echo.Group) {
	server.GET("/dashboard", d.GetAdminDashboard)
}

func (d *Dashboard) snapshot(c echo.Context, recentLimit int) (*entity.DashboardSnapshot, error) {
	return d.dashboardUseCase.ComputeSnapshot(c.Request().Context(), &entity.SnapshotRequest{
		Now:             d.now(),
		RecentLimit:     recentLimit,
		TopAuthorsLimit: service.DefaultTopAuthorsLimit,
	})
}

func (d *Dashboard) GetDashboard(c echo.Context) error {
	if _, err := d.authManager.CheckAuthFromContext(c); err != nil {
		return respondError(c, err)
	}
	snapshot, err := d.snapshot(c, service.DefaultRecentLimit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (d *Dashboard) GetAnalytics(c echo.Context) error {
	if _, err := d.authManager.CheckAuthFromContext(c); err != nil {
		return respondError(c, err)
	}
	snapshot, err := d.snapshot(c, service.DefaultRecentLimit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entity.AnalyticsResponse{
		MonthlyPosts:         service.Series(snapshot.Monthly),
		WeeklyPosts:          service.Series(snapshot.Weekly),
		CategoryDistribution: snapshot.CategoryDistribution,
		StatusDistribution:   snapshot.StatusDistribution,
	})
}

func (d *Dashboard) GetAdminDashboard(c echo.Context) error {
	userID, err := d.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	isStaff, err := d.userUseCase.IsStaff(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	if !isStaff {
		return respondError(c, usecase.ErrUserForbidden)
	}
	snapshot, err := d.snapshot(c, service.AdminRecentLimit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, snapshot)
}
