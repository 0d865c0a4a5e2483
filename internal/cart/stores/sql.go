package stores

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/pkg/db/models"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const BackendSQL = "sql"

// SQL stores one cart_snapshots row per storage key.
type SQL struct {
	db      *gorm.DB
	metrics *metrics.CartMetrics
	logg    *logger.Logger
}

func NewSQL(db *gorm.DB, m *metrics.CartMetrics, logg *logger.Logger) *SQL {
	if logg == nil {
		logg = logger.Nop()
	}
	return &SQL{db: db, metrics: m, logg: logg}
}

func (s *SQL) Backend() string { return BackendSQL }

func (s *SQL) ForKey(key string) cart.Store {
	return &sqlStore{parent: s, key: key}
}

type sqlStore struct {
	parent *SQL
	key    string
}

func (s *sqlStore) Load(ctx context.Context) []cart.Item {
	start := time.Now()
	defer func() { s.parent.metrics.ObserveStore(BackendSQL, "load", time.Since(start)) }()

	var snap models.CartSnapshot
	err := s.parent.db.WithContext(ctx).Where("key = ?", s.key).Take(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []cart.Item{}
		}
		return backendFailure(ctx, s.parent.logg, s.parent.metrics, BackendSQL, s.key, err)
	}
	return decodeOrEmpty(ctx, s.parent.logg, s.parent.metrics, BackendSQL, s.key, []byte(snap.Payload))
}

func (s *sqlStore) Save(ctx context.Context, items []cart.Item) error {
	start := time.Now()
	defer func() { s.parent.metrics.ObserveStore(BackendSQL, "save", time.Since(start)) }()

	payload, err := cart.EncodeItems(items)
	if err != nil {
		return err
	}
	snap := models.CartSnapshot{Key: s.key, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	return s.parent.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snap).Error
}

func (s *sqlStore) Clear(ctx context.Context) error {
	return s.parent.db.WithContext(ctx).Where("key = ?", s.key).Delete(&models.CartSnapshot{}).Error
}
