// internal/services/admin_service.go
package services

import (
	"context"
	"time"

	"github.com/retailx/retailx-backend/internal/database"
	"github.com/retailx/retailx-backend/internal/models"
	"github.com/retailx/retailx-backend/internal/query"
)

type AdminService struct {
	store *database.Store
}

func NewAdminService(store *database.Store) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) GetPlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	stats := &models.PlatformStats{GeneratedAt: time.Now().UTC()}

	counts := []struct {
		coll   database.Collection
		filter query.Filter
		dst    *int64
	}{
		{s.store.Users, nil, &stats.Users},
		{s.store.Sellers, nil, &stats.Sellers},
		{s.store.Admins, nil, &stats.Admins},
		{s.store.Products, nil, &stats.Products},
		{s.store.Products, query.ActiveOnly(), &stats.ActiveProducts},
	}
	for _, c := range counts {
		n, err := c.coll.Count(ctx, c.filter)
		if err != nil {
			return nil, databaseError(err)
		}
		*c.dst = n
	}

	stats.InactiveProducts = stats.Products - stats.ActiveProducts
	return stats, nil
}

// ListAuditLogs pages through audit entries, newest first.
func (s *AdminService) ListAuditLogs(ctx context.Context, limit, skip int64) ([]models.AuditLog, error) {
	docs, err := s.store.AuditLogs.Find(ctx, nil, database.FindOptions{
		Limit:    limit,
		Skip:     skip,
		SortBy:   "createdAt",
		SortDesc: true,
	})
	if err != nil {
		return nil, databaseError(err)
	}

	logs := make([]models.AuditLog, 0, len(docs))
	for _, doc := range docs {
		var entry models.AuditLog
		if err := database.Decode(doc, &entry); err != nil {
			return nil, databaseError(err)
		}
		logs = append(logs, entry)
	}
	return logs, nil
}
