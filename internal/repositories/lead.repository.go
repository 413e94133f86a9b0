package repositories

import (
	"context"
	"server/internal/database"
	"server/internal/logger"

	. "server/internal/models"

	"gorm.io/gorm"
)

// leadOrder matches the admin view and CSV export ordering: newest first.
const leadOrder = "datetime(created_at) DESC"

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	CreateBatch(ctx context.Context, leads []*Lead) error
	Search(ctx context.Context, query string) ([]Lead, error)
	Count(ctx context.Context) (int64, error)
	ForEach(ctx context.Context, fn func(Lead) error) error
}

type leadRepository struct {
	db  database.DB
	log logger.Logger
}

func New(db database.DB) LeadRepository {
	return &leadRepository{
		db:  db,
		log: logger.New("leadRepository"),
	}
}

func (r *leadRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.SQLWithContext(ctx)
}

func (r *leadRepository) Create(ctx context.Context, lead *Lead) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(lead).Error; err != nil {
		return log.Err("failed to create lead", err, "lead", lead)
	}

	return nil
}

func (r *leadRepository) CreateBatch(ctx context.Context, leads []*Lead) error {
	log := r.log.Function("CreateBatch")

	if len(leads) == 0 {
		return log.Error("empty lead batch provided")
	}

	if err := r.getDB(ctx).Create(leads).Error; err != nil {
		return log.Err("failed to create lead batch", err, "count", len(leads))
	}

	return nil
}

// Search returns all leads when query is empty, otherwise leads whose name,
// email, phone, or insurance type contains the query as a substring. Full-table
// LIKE scans are fine at this volume; there is no index beyond the primary key.
func (r *leadRepository) Search(ctx context.Context, query string) ([]Lead, error) {
	log := r.log.Function("Search")

	db := r.getDB(ctx).Order(leadOrder)
	if query != "" {
		like := "%" + query + "%"
		db = db.Where(
			"name LIKE ? OR email LIKE ? OR phone LIKE ? OR insurance_type LIKE ?",
			like, like, like, like,
		)
	}

	leads := []Lead{}
	if err := db.Find(&leads).Error; err != nil {
		return nil, log.Err("failed to search leads", err, "query", query)
	}

	return leads, nil
}

func (r *leadRepository) Count(ctx context.Context) (int64, error) {
	log := r.log.Function("Count")

	var count int64
	if err := r.getDB(ctx).Model(&Lead{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count leads", err)
	}

	return count, nil
}

// ForEach streams all leads in export order through fn one row at a time, so
// CSV export memory use stays independent of lead count.
func (r *leadRepository) ForEach(ctx context.Context, fn func(Lead) error) error {
	log := r.log.Function("ForEach")

	rows, err := r.getDB(ctx).Model(&Lead{}).Order(leadOrder).Rows()
	if err != nil {
		return log.Err("failed to query leads for iteration", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lead Lead
		if err := r.getDB(ctx).ScanRows(rows, &lead); err != nil {
			return log.Err("failed to scan lead row", err)
		}
		if err := fn(lead); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return log.Err("lead row iteration failed", err)
	}

	return nil
}
