// Package listview deriva la página visible de una colección ya cargada
// en memoria: filtros en conjunción, orden opcional y paginación 1-indexed.
// Derive es una función pura; con los mismos argumentos devuelve siempre
// el mismo resultado.
package listview

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultPageSize = 10

	// SentinelAll desactiva un predicado de igualdad
	SentinelAll = "all"
)

type Predicate[T any] func(T) bool

type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// ===============================
// Normalization
// ===============================

var foldAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize baja a minúsculas, recorta espacios y pliega acentos,
// así "María" matchea la búsqueda "maria".
func Normalize(s string) string {
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ===============================
// Predicates
// ===============================

// Text matchea la query como substring (case/accent-insensitive) contra
// la lista de campos de la entidad. Query vacía matchea todo.
func Text[T any](query string, fields func(T) []string) Predicate[T] {
	q := Normalize(query)
	if q == "" {
		return matchAll[T]
	}
	return func(item T) bool {
		for _, f := range fields(item) {
			if strings.Contains(Normalize(f), q) {
				return true
			}
		}
		return false
	}
}

// Equals compara igualdad exacta sobre el valor normalizado.
// Valor vacío o "all" desactiva el predicado.
func Equals[T any](value string, field func(T) string) Predicate[T] {
	v := Normalize(value)
	if v == "" || v == SentinelAll {
		return matchAll[T]
	}
	return func(item T) bool {
		return Normalize(field(item)) == v
	}
}

// Bool interpreta "true"/"false"; cualquier otro valor desactiva el
// predicado.
func Bool[T any](value string, field func(T) bool) Predicate[T] {
	switch Normalize(value) {
	case "true":
		return func(item T) bool { return field(item) }
	case "false":
		return func(item T) bool { return !field(item) }
	}
	return matchAll[T]
}

func matchAll[T any](T) bool { return true }

// ===============================
// Derive
// ===============================

// Derive aplica la conjunción de predicados y recorta la página pedida.
// Una página fuera de rango devuelve items vacíos con los contadores
// correctos; page < 1 se trata como 1.
func Derive[T any](items []T, preds []Predicate[T], page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, preds) {
			filtered = append(filtered, item)
		}
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      filtered[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

func matches[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// SortBy devuelve una copia ordenada (estable); no muta la colección
// original.
func SortBy[T any](items []T, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}
