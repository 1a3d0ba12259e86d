package impex

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/recipediary/internal/domain"
)

// importRecord is the accepted shape of one imported recipe. Identity
// fields are read loosely because they are discarded on import.
type importRecord struct {
	ID           json.RawMessage `json:"id"`
	Title        string          `json:"title"`
	Ingredients  []string        `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	PrepTime     optionalInt     `json:"prepTime"`
	CookTime     optionalInt     `json:"cookTime"`
	TotalTime    optionalInt     `json:"totalTime"`
	Servings     optionalInt     `json:"servings"`
	ImageURL     *string         `json:"imageUrl"`
	SourceURL    *string         `json:"sourceUrl"`
	Tags         []string        `json:"tags"`
	Author       *string         `json:"author"`
	Cuisine      *string         `json:"cuisine"`
	MealType     *string         `json:"mealType"`
	DateAdded    json.RawMessage `json:"dateAdded"`
	UserID       json.RawMessage `json:"userId"`
}

func (r importRecord) toRecipe() domain.Recipe {
	out := domain.Recipe{
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime.v,
		CookTime:     r.CookTime.v,
		TotalTime:    r.TotalTime.v,
		Servings:     r.Servings.v,
		ImageURL:     r.ImageURL,
		SourceURL:    r.SourceURL,
		Tags:         r.Tags,
		Author:       r.Author,
		Cuisine:      r.Cuisine,
	}
	if r.MealType != nil {
		m := domain.MealType(*r.MealType)
		out.MealType = &m
	}
	return out
}

// ReadImport decodes an import document: a JSON array of recipe objects as
// produced by WriteExport. Any other shape fails with ErrMalformedImport.
func ReadImport(r io.Reader) ([]domain.Recipe, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed("read document: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, malformed("document must be an array of recipes")
	}

	recipes := []domain.Recipe{}
	for i := 1; dec.More(); i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, malformed("record %d: %v", i, err)
		}
		if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
			return nil, malformed("record %d: must be an object", i)
		}
		var rec importRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, malformed("record %d: %v", i, err)
		}
		recipes = append(recipes, rec.toRecipe())
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed("read document: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("unexpected data after the recipe array")
	}

	return recipes, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedImport, fmt.Sprintf(format, args...))
}

// optionalInt accepts a JSON number, a numeric string or null. Values that
// are not whole numbers decode as absent.
type optionalInt struct {
	v *int
}

func (o *optionalInt) UnmarshalJSON(b []byte) error {
	o.v = nil
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			o.v = &n
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	if f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32 {
		n := int(f)
		o.v = &n
	}
	return nil
}
