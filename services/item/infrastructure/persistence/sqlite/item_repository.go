package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"github.com/ghuser/itemstore/pkg/database"
	"github.com/ghuser/itemstore/pkg/events"
	"github.com/ghuser/itemstore/pkg/logger"
	itemdomain "github.com/ghuser/itemstore/services/item/domain"
	domainevents "github.com/ghuser/itemstore/services/item/domain/events"
	"github.com/ghuser/itemstore/services/item/domain/models"
	"github.com/ghuser/itemstore/services/item/domain/repositories"
)

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// itemRecord is the GORM mapping of one row of the "items" table.
type itemRecord struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"not null;index"`
	Description string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Quantity    int64   `gorm:"not null"`
}

func (itemRecord) TableName() string { return "items" }

// Models lists the GORM models owned by this package, for AutoMigrate.
func Models() []any {
	return []any{&itemRecord{}}
}

// ItemRepository implements repositories.ItemRepository against SQLite via GORM.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
	log logger.Logger
}

// NewItemRepository returns an ItemRepository backed by db. When bus is non-nil,
// item events are published after each successful commit.
func NewItemRepository(db *database.Database, bus *events.EventBus, log logger.Logger) *ItemRepository {
	return &ItemRepository{db: db, bus: bus, log: log}
}

// Save inserts a new Item in its own transaction and sets item.ID.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	var rec itemRecord
	if err := copier.Copy(&rec, item); err != nil {
		return fmt.Errorf("map item: %w", err)
	}

	if err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return database.Wrap("insert item", err)
		}
		return nil
	}); err != nil {
		return err
	}

	item.ID = rec.ID
	r.publishChanged(ctx, domainevents.TopicItemCreated, rec)
	return nil
}

// GetByID retrieves an Item by id. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var rec itemRecord
	if err := r.db.Session(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, database.Wrap("query item", err)
	}
	return recordToItem(rec)
}

// List returns all items ordered by primary key.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	var recs []itemRecord
	if err := r.db.Session(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, database.Wrap("query items", err)
	}

	items := make([]*models.Item, 0, len(recs))
	for _, rec := range recs {
		item, err := recordToItem(rec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Update fetches the row and overwrites every field inside one transaction.
// Nothing is written when the row does not exist.
func (r *ItemRepository) Update(ctx context.Context, id int64, fields models.Fields) (*models.Item, error) {
	var rec itemRecord
	if err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := findForWrite(tx, &rec, id); err != nil {
			return err
		}
		if err := copier.Copy(&rec, &fields); err != nil {
			return fmt.Errorf("map fields: %w", err)
		}
		if err := tx.Save(&rec).Error; err != nil {
			return database.Wrap("update item", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	r.publishChanged(ctx, domainevents.TopicItemUpdated, rec)
	return recordToItem(rec)
}

// Delete fetches the row and removes it inside one transaction.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var rec itemRecord
		if err := findForWrite(tx, &rec, id); err != nil {
			return err
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return database.Wrap("delete item", err)
		}
		return nil
	}); err != nil {
		return err
	}

	r.publish(ctx, domainevents.TopicItemDeleted, id, domainevents.ItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func findForWrite(tx *gorm.DB, rec *itemRecord, id int64) error {
	if err := tx.First(rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return itemdomain.ErrItemNotFound
		}
		return database.Wrap("query item", err)
	}
	return nil
}

func (r *ItemRepository) publishChanged(ctx context.Context, topic string, rec itemRecord) {
	r.publish(ctx, topic, rec.ID, domainevents.ItemChangedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Quantity:    rec.Quantity,
		OccurredAt:  time.Now().UTC(),
	})
}

// publish runs after the commit; a failure here is logged and never undoes
// or fails the write that already happened.
func (r *ItemRepository) publish(ctx context.Context, topic string, itemID int64, event any) {
	if r.bus == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		r.log.ErrorContext(ctx, "marshal item event", "topic", topic, "item_id", itemID, "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_version", "1")
	msg.Metadata.Set("item_id", strconv.FormatInt(itemID, 10))
	if err := r.bus.Publish(ctx, topic, msg); err != nil {
		r.log.WarnContext(ctx, "publish item event", "topic", topic, "item_id", itemID, "error", err)
	}
}

// recordToItem maps an itemRecord to a domain models.Item.
func recordToItem(rec itemRecord) (*models.Item, error) {
	item := &models.Item{}
	if err := copier.Copy(item, &rec); err != nil {
		return nil, fmt.Errorf("map item record: %w", err)
	}
	return item, nil
}
