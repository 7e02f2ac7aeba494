// Package table maps entity collections to column descriptors, sorted and
// paginated rows, selection sets and row actions.
package table

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultPageSize applies when neither the config nor the request sets one.
const DefaultPageSize = 10

var (
	ErrUnknownColumn      = errors.New("unknown column")
	ErrDuplicateColumn    = errors.New("duplicate column key")
	ErrNotSortable        = errors.New("column is not sortable")
	ErrNotFilterable      = errors.New("column is not filterable")
	ErrInvalidSortOrder   = errors.New("invalid sort order")
	ErrActionUnavailable  = errors.New("action is not available for this row")
	ErrMissingRowKey      = errors.New("row key function is required")
	ErrInvalidSelectScope = errors.New("invalid selection scope")
)

// SortOrder is the direction of a column sort; SortNone keeps input order.
type SortOrder string

const (
	SortNone    SortOrder = ""
	SortAscend  SortOrder = "ascend"
	SortDescend SortOrder = "descend"
)

// FilterOption is a labelled equality predicate offered by a column.
type FilterOption[T any] struct {
	Text  string
	Value string
	Match func(T) bool
}

// Column describes one table column.
type Column[T any] struct {
	Key     string
	Title   string
	Width   int
	Fixed   string
	Sorter  func(a, b T) int
	Filters []FilterOption[T]
	Render  func(T) any
}

// RowAction is an action a row may expose, e.g. approve or delete.
type RowAction[T any] struct {
	Kind    string
	Label   string
	Danger  bool
	Visible func(T) bool
}

// Config declares a table: how rows are keyed, its columns and row actions.
type Config[T any] struct {
	RowKey   func(T) string
	Columns  []Column[T]
	Actions  []RowAction[T]
	PageSize int
	// Noun is used by the total label, e.g. "leaves".
	Noun string
}

// Table renders collections of T according to its Config.
type Table[T any] struct {
	cfg   Config[T]
	index map[string]int
}

// New validates cfg and indexes its columns by key.
func New[T any](cfg Config[T]) (*Table[T], error) {
	if cfg.RowKey == nil {
		return nil, ErrMissingRowKey
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Noun == "" {
		cfg.Noun = "items"
	}

	index := make(map[string]int, len(cfg.Columns))
	for i, col := range cfg.Columns {
		if _, exists := index[col.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Key)
		}
		index[col.Key] = i
	}

	return &Table[T]{cfg: cfg, index: index}, nil
}

// MustNew is New for package-level table definitions.
func MustNew[T any](cfg Config[T]) *Table[T] {
	t, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Request carries the user-driven table state.
type Request struct {
	SortBy    string
	SortOrder SortOrder
	// Filters maps a column key to the selected filter values.
	Filters  map[string][]string
	Page     int
	PageSize int
}

type Cell struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type Row struct {
	Key     string   `json:"key"`
	Cells   []Cell   `json:"cells"`
	Actions []string `json:"actions,omitempty"`
}

type FilterMeta struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

type ColumnMeta struct {
	Key       string       `json:"key"`
	Title     string       `json:"title"`
	Width     int          `json:"width,omitempty"`
	Fixed     string       `json:"fixed,omitempty"`
	Sortable  bool         `json:"sortable"`
	SortOrder SortOrder    `json:"sort_order,omitempty"`
	Filters   []FilterMeta `json:"filters,omitempty"`
}

type Meta struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	TotalLabel string `json:"total_label"`
}

type View struct {
	Columns []ColumnMeta `json:"columns"`
	Rows    []Row        `json:"rows"`
	Meta    Meta         `json:"meta"`
}

// Columns returns the column descriptors annotated with the active sort.
func (t *Table[T]) Columns(req Request) []ColumnMeta {
	out := make([]ColumnMeta, 0, len(t.cfg.Columns))
	for _, col := range t.cfg.Columns {
		meta := ColumnMeta{
			Key:      col.Key,
			Title:    col.Title,
			Width:    col.Width,
			Fixed:    col.Fixed,
			Sortable: col.Sorter != nil,
		}
		if col.Key == req.SortBy {
			meta.SortOrder = req.SortOrder
		}
		for _, f := range col.Filters {
			meta.Filters = append(meta.Filters, FilterMeta{Text: f.Text, Value: f.Value})
		}
		out = append(out, meta)
	}
	return out
}

func (t *Table[T]) column(key string) (Column[T], error) {
	i, ok := t.index[key]
	if !ok {
		return Column[T]{}, fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	return t.cfg.Columns[i], nil
}

// Filter applies column filters. Values selected on one column are ORed;
// columns are ANDed.
func (t *Table[T]) Filter(items []T, filters map[string][]string) ([]T, error) {
	type active struct {
		col    Column[T]
		values []string
	}
	var checks []active
	for key, values := range filters {
		if len(values) == 0 {
			continue
		}
		col, err := t.column(key)
		if err != nil {
			return nil, err
		}
		if len(col.Filters) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFilterable, key)
		}
		checks = append(checks, active{col: col, values: values})
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, c := range checks {
			if !anyOption(item, c.col.Filters, c.values) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out, nil
}

func anyOption[T any](item T, options []FilterOption[T], values []string) bool {
	for _, v := range values {
		for _, opt := range options {
			if opt.Value == v && opt.Match != nil && opt.Match(item) {
				return true
			}
		}
	}
	return false
}

// Sort returns a stably sorted copy. SortNone keeps input order.
func (t *Table[T]) Sort(items []T, by string, order SortOrder) ([]T, error) {
	out := slices.Clone(items)
	if order == SortNone || by == "" {
		return out, nil
	}
	if order != SortAscend && order != SortDescend {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSortOrder, order)
	}

	col, err := t.column(by)
	if err != nil {
		return nil, err
	}
	if col.Sorter == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotSortable, by)
	}

	slices.SortStableFunc(out, func(a, b T) int {
		if order == SortDescend {
			return col.Sorter(b, a)
		}
		return col.Sorter(a, b)
	})
	return out, nil
}

// Paginate cuts one page out of items. Page numbers start at 1; a page
// past the end is empty.
func Paginate[T any](items []T, page, size int) ([]T, Meta) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	meta := Meta{
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
	}

	start := (page - 1) * size
	if start >= total {
		return []T{}, meta
	}
	end := min(start+size, total)
	return items[start:end], meta
}

// Prepare runs column filters, sorting and pagination. It returns the
// visible page and the full filtered, sorted collection.
func (t *Table[T]) Prepare(items []T, req Request) (page []T, all []T, meta Meta, err error) {
	filtered, err := t.Filter(items, req.Filters)
	if err != nil {
		return nil, nil, Meta{}, err
	}
	sorted, err := t.Sort(filtered, req.SortBy, req.SortOrder)
	if err != nil {
		return nil, nil, Meta{}, err
	}

	size := req.PageSize
	if size <= 0 {
		size = t.cfg.PageSize
	}
	page, meta = Paginate(sorted, req.Page, size)
	meta.TotalLabel = fmt.Sprintf("Total %d %s", meta.TotalItems, t.cfg.Noun)
	return page, sorted, meta, nil
}

// Render produces the display view for one request.
func (t *Table[T]) Render(items []T, req Request) (View, error) {
	page, _, meta, err := t.Prepare(items, req)
	if err != nil {
		return View{}, err
	}

	rows := make([]Row, 0, len(page))
	for _, item := range page {
		rows = append(rows, t.row(item))
	}

	return View{
		Columns: t.Columns(req),
		Rows:    rows,
		Meta:    meta,
	}, nil
}

func (t *Table[T]) row(item T) Row {
	cells := make([]Cell, 0, len(t.cfg.Columns))
	for _, col := range t.cfg.Columns {
		if col.Render == nil {
			continue
		}
		cells = append(cells, Cell{Key: col.Key, Value: col.Render(item)})
	}
	return Row{
		Key:     t.cfg.RowKey(item),
		Cells:   cells,
		Actions: t.Actions(item),
	}
}

// Key returns the row key of item.
func (t *Table[T]) Key(item T) string {
	return t.cfg.RowKey(item)
}

// Keys returns the row keys of items in order.
func (t *Table[T]) Keys(items []T) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, t.cfg.RowKey(item))
	}
	return keys
}

// Actions lists the action kinds visible on a row.
func (t *Table[T]) Actions(item T) []string {
	var kinds []string
	for _, a := range t.cfg.Actions {
		if a.Visible == nil || a.Visible(item) {
			kinds = append(kinds, a.Kind)
		}
	}
	return kinds
}

// Trigger invokes fn with the row key and record when the row exposes the
// action. The table never mutates the record.
func (t *Table[T]) Trigger(item T, kind string, fn func(kind, key string, item T) error) error {
	for _, a := range t.cfg.Actions {
		if a.Kind != kind {
			continue
		}
		if a.Visible != nil && !a.Visible(item) {
			break
		}
		return fn(kind, t.cfg.RowKey(item), item)
	}
	return fmt.Errorf("%w: %s on %s", ErrActionUnavailable, kind, t.cfg.RowKey(item))
}
