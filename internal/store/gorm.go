package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

type collection struct {
	table  string
	typ    reflect.Type
	schema *schema.Schema
}

func (c *collection) newDocument() interface{} {
	return reflect.New(c.typ).Interface()
}

func (c *collection) hasColumn(name string) bool {
	_, ok := c.schema.FieldsByDBName[name]
	return ok
}

// GormStore implements DocumentStore over relational tables, one table per collection.
// Every table must have a string primary key column named id.
type GormStore struct {
	db          *gorm.DB
	collections map[string]*collection
	inTx        bool
	lockRows    bool
}

var (
	_ DocumentStore = (*GormStore)(nil)
	_ Transactor    = (*GormStore)(nil)
)

// NewGormStore registers each model as a collection named after its table.
func NewGormStore(db *gorm.DB, documents ...interface{}) (*GormStore, error) {
	s := &GormStore{db: db, collections: make(map[string]*collection, len(documents))}
	for _, doc := range documents {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(doc); err != nil {
			return nil, fmt.Errorf("failed to parse document model %T: %w", doc, err)
		}
		if _, ok := stmt.Schema.FieldsByDBName["id"]; !ok {
			return nil, fmt.Errorf("document model %T has no id column", doc)
		}
		s.collections[stmt.Schema.Table] = &collection{
			table:  stmt.Schema.Table,
			typ:    stmt.Schema.ModelType,
			schema: stmt.Schema,
		}
	}
	return s, nil
}

func (s *GormStore) lookup(name string, fields []string) (*collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	for _, f := range fields {
		if !c.hasColumn(f) {
			return nil, fmt.Errorf("%w: %s.%s", ErrInvalidField, name, f)
		}
	}
	return c, nil
}

func (s *GormStore) Get(ctx context.Context, name, id string, dst interface{}) error {
	c, err := s.lookup(name, nil)
	if err != nil {
		return err
	}

	q := s.db.WithContext(ctx).Table(c.table).Where("id = ?", id)
	if s.lockRows {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Take(dst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get %s/%s: %w", name, id, err)
	}
	return nil
}

func (s *GormStore) Set(ctx context.Context, name, id string, fields Fields, opts SetOptions) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	c, err := s.lookup(name, keys)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	write := func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(c.newDocument()).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 && !opts.Merge {
			if err := tx.Where("id = ?", id).Delete(c.newDocument()).Error; err != nil {
				return err
			}
			count = 0
		}
		if count == 0 {
			return tx.Model(c.newDocument()).Create(createValues(c, id, fields, now)).Error
		}
		return tx.Model(c.newDocument()).Where("id = ?", id).Updates(updateValues(c, fields, now)).Error
	}

	if s.inTx {
		err = write(s.db.WithContext(ctx))
	} else {
		err = s.db.WithContext(ctx).Transaction(write)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", name, id, err)
	}
	return nil
}

func createValues(c *collection, id string, fields Fields, now time.Time) map[string]interface{} {
	values := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		if inc, ok := v.(Increment); ok {
			v = inc.By
		}
		values[k] = v
	}
	values["id"] = id
	stamp(c, values, "created_at", now)
	stamp(c, values, "updated_at", now)
	return values
}

func updateValues(c *collection, fields Fields, now time.Time) map[string]interface{} {
	values := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		if inc, ok := v.(Increment); ok {
			v = gorm.Expr("? + ?", clause.Column{Name: k}, inc.By)
		}
		values[k] = v
	}
	delete(values, "id")
	stamp(c, values, "updated_at", now)
	return values
}

// stamp sets a timestamp column the caller did not provide.
func stamp(c *collection, values map[string]interface{}, column string, now time.Time) {
	if _, ok := values[column]; ok || !c.hasColumn(column) {
		return
	}
	values[column] = now
}

func (s *GormStore) QueryEqual(ctx context.Context, name string, filters []Filter, opts QueryOptions, dst interface{}) error {
	fields := make([]string, 0, len(filters)+1)
	for _, f := range filters {
		fields = append(fields, f.Field)
	}
	if opts.OrderBy != "" {
		fields = append(fields, opts.OrderBy)
	}
	c, err := s.lookup(name, fields)
	if err != nil {
		return err
	}

	q := s.db.WithContext(ctx).Table(c.table)
	for _, f := range filters {
		q = q.Where(clause.Eq{Column: clause.Column{Name: f.Field}, Value: f.Value})
	}
	if opts.OrderBy != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: opts.OrderBy}, Desc: opts.Descending})
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if err := q.Find(dst).Error; err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	return nil
}

// RunInTransaction runs fn against a store bound to one database transaction.
// On postgres, documents read inside the transaction are row-locked until it ends.
func (s *GormStore) RunInTransaction(ctx context.Context, fn func(tx DocumentStore) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{
			db:          tx,
			collections: s.collections,
			inTx:        true,
			lockRows:    tx.Dialector.Name() == "postgres",
		})
	})
}
