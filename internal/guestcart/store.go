// Package guestcart persists the anonymous visitor's cart as a single
// JSON document in local durable storage. The store is the exclusive
// writer of that document; once the user authenticates the document is
// read one last time for migration and then deleted.
package guestcart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yallashop/storefront/internal/app/model"
	"github.com/yallashop/storefront/pkg/logger"
)

// Store manages the guest cart document at a fixed path.
//
// Storage failures are never fatal: a missing, unreadable, or malformed
// document degrades to an empty cart and is logged as a warning. The
// caller always gets a usable cart back.
type Store struct {
	path string
}

// New creates a Store backed by the document at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted guest cart, or an empty cart when the
// document is absent or malformed.
func (s *Store) Load() []model.CartLine {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Guest cart unreadable, starting empty", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return []model.CartLine{}
	}

	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn("Guest cart malformed, starting empty", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return []model.CartLine{}
	}
	if lines == nil {
		return []model.CartLine{}
	}
	return lines
}

// Add inserts a line, merging quantities when a line with the same
// variant key already exists. The full updated cart is persisted and
// returned.
func (s *Store) Add(line model.CartLine) []model.CartLine {
	lines := s.Load()

	key := line.Key()
	merged := false
	for i := range lines {
		if lines[i].Key() == key {
			lines[i].SetQuantity(lines[i].Quantity + line.Quantity)
			merged = true
			break
		}
	}
	if !merged {
		line.SetQuantity(line.Quantity)
		lines = append(lines, line)
	}

	s.persist(lines)
	return lines
}

// Remove filters out the line matching all three identifiers exactly.
// A nil size or color id only matches a line where it is also nil.
func (s *Store) Remove(productID uint, sizeID, colorID *uint) []model.CartLine {
	lines := s.Load()
	key := model.NewVariantKey(productID, sizeID, colorID)

	kept := lines[:0]
	for _, l := range lines {
		if l.Key() != key {
			kept = append(kept, l)
		}
	}

	s.persist(kept)
	return kept
}

// Clear deletes the guest cart document. Calling it on an already
// empty store is a no-op.
func (s *Store) Clear() []model.CartLine {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to delete guest cart document", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
	}
	return []model.CartLine{}
}

func (s *Store) persist(lines []model.CartLine) {
	data, err := json.Marshal(lines)
	if err != nil {
		logger.Warn("Failed to encode guest cart", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		logger.Warn("Failed to create guest cart directory", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		logger.Warn("Failed to persist guest cart", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
	}
}
