package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AllItemsTab is the sentinel tab value that disables category filtering.
const AllItemsTab = "All Items"

// Product is a leaf catalog entry. Every descriptive field may be absent in
// the payload; consumers treat missing fields as empty.
type Product struct {
	ProductID          string   `json:"product_id"`
	ProductName        string   `json:"product_name,omitempty"`
	ProductTitle       string   `json:"product_title,omitempty"`
	ProductDescription string   `json:"product_description,omitempty"`
	ImageURLs          []string `json:"image_urls,omitempty"`
	Subcategory        string   `json:"subcategory,omitempty"`
	CategoryID         string   `json:"category_id,omitempty"`
	SubcategoryID      string   `json:"subcategory_id,omitempty"`
	ProductPrice       *float64 `json:"product_price,omitempty"`
	MainCategory       string   `json:"main_category,omitempty"`
	CategoryName       string   `json:"category_name,omitempty"`
	SubcategoryName    string   `json:"subcategory_name,omitempty"`

	// Timestamps arrive in whatever shape the upstream store produced:
	// ISO strings, epoch-millisecond numbers, numeric strings or Mongo
	// extended JSON ({"$date": "..."}). recency.ToEpochMs normalizes them.
	CreatedAt any `json:"created_at,omitempty"`
	UpdatedAt any `json:"updated_at,omitempty"`
}

// Price returns the product price, with absent price treated as zero for
// range comparisons.
func (p *Product) Price() float64 {
	if p.ProductPrice == nil {
		return 0
	}
	return *p.ProductPrice
}

// SubcategoryLabel returns the display label used by the subcategory facet,
// preferring the denormalized field over the raw name.
func (p *Product) SubcategoryLabel() string {
	if p.Subcategory != "" {
		return p.Subcategory
	}
	return p.SubcategoryName
}

// Subcategory owns an ordered product list within one category.
type Subcategory struct {
	SubcategoryID   string    `json:"subcategory_id"`
	SubcategoryName string    `json:"subcategory_name"`
	Products        []Product `json:"products"`
}

// Category groups subcategories. The upstream API keys subcategories by id;
// decoding keeps the object's key order because the storefront renders
// facets in catalog-traversal order.
type Category struct {
	CategoryID    string        `json:"category_id"`
	CategoryName  string        `json:"category_name"`
	MainCategory  string        `json:"main_category,omitempty"`
	Subcategories []Subcategory `json:"-"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	type alias struct {
		CategoryID    string          `json:"category_id"`
		CategoryName  string          `json:"category_name"`
		MainCategory  string          `json:"main_category"`
		Subcategories json.RawMessage `json:"subcategories"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	c.CategoryID = a.CategoryID
	c.CategoryName = a.CategoryName
	c.MainCategory = a.MainCategory

	subs, err := decodeOrderedObject(a.Subcategories, func(key string, raw json.RawMessage) (Subcategory, error) {
		var sub Subcategory
		if err := json.Unmarshal(raw, &sub); err != nil {
			return sub, err
		}
		if sub.SubcategoryID == "" {
			sub.SubcategoryID = key
		}
		return sub, nil
	})
	if err != nil {
		return fmt.Errorf("category %s: %w", c.CategoryID, err)
	}
	c.Subcategories = subs
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField(&buf, "category_id", c.CategoryID)
	buf.WriteByte(',')
	writeField(&buf, "category_name", c.CategoryName)
	if c.MainCategory != "" {
		buf.WriteByte(',')
		writeField(&buf, "main_category", c.MainCategory)
	}
	buf.WriteString(`,"subcategories":{`)
	for i, sub := range c.Subcategories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(sub.SubcategoryID)
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(sub)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// CatalogSnapshot is one complete fetch result of the category hierarchy,
// treated as immutable for the duration of a render cycle.
type CatalogSnapshot struct {
	Categories []Category `json:"-"`
}

func (s *CatalogSnapshot) UnmarshalJSON(data []byte) error {
	type alias struct {
		Categories json.RawMessage `json:"categories"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	cats, err := decodeOrderedObject(a.Categories, func(key string, raw json.RawMessage) (Category, error) {
		var cat Category
		if err := json.Unmarshal(raw, &cat); err != nil {
			return cat, err
		}
		if cat.CategoryID == "" {
			cat.CategoryID = key
		}
		return cat, nil
	})
	if err != nil {
		return err
	}
	s.Categories = cats
	return nil
}

func (s CatalogSnapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"categories":{`)
	for i, cat := range s.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(cat.CategoryID)
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(cat)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// decodeOrderedObject walks a JSON object token by token so that entry order
// survives decoding. encoding/json maps would randomize it.
func decodeOrderedObject[T any](raw json.RawMessage, decode func(key string, raw json.RawMessage) (T, error)) ([]T, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	var out []T
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("entry %s: %w", key, err)
		}
		item, err := decode(key, value)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func writeField(buf *bytes.Buffer, name, value string) {
	key, _ := json.Marshal(name)
	val, _ := json.Marshal(value)
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
}

// PriceRange is an inclusive price bound. A nil *PriceRange means unbounded.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price falls within the inclusive range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// APIResponse is the envelope every catalog API endpoint wraps its payload in.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorMessage returns the most specific failure message the envelope carries.
func (r *APIResponse[T]) ErrorMessage(fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	if r.Error != "" {
		return r.Error
	}
	return fallback
}
