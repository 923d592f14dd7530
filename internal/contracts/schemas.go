package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	TranslationRequestedEvent = "TranslationRequestedEvent"
	ListingPageResponse       = "ListingPageResponse"

	V1 = "1.0.0"
)

// Registry - скомпилированные схемы по ключу "<Name>/<version>".
type Registry struct {
	schemas map[string]*jsonschema.Schema
}

// NewRegistry компилирует все схемы из fsys (каталоги events и api).
func NewRegistry(fsys fs.FS) (*Registry, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		// Добавляем все схемы как ресурсы, чтобы работали ссылки через `$ref`
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	r := &Registry{schemas: make(map[string]*jsonschema.Schema, len(paths))}
	for _, path := range paths {
		key := generateKeyFromPath(path)
		if key == "" {
			continue
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		r.schemas[key] = schema
	}
	return r, nil
}

// generateKeyFromPath: "events/translation-requested/v1.json" -> "TranslationRequestedEvent/1.0.0",
// "api/listing-page/v1.json" -> "ListingPageResponse/1.0.0".
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")
	if len(parts) != 3 {
		return ""
	}

	var suffix string
	switch parts[0] {
	case "events":
		suffix = "Event"
	case "api":
		suffix = "Response"
	default:
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	version := strings.Replace(parts[2], "v", "", 1) + ".0.0"
	return name.String() + "/" + version
}

// Validate проверяет JSON-документ по схеме name/version.
func (r *Registry) Validate(name, version string, body []byte) error {
	schema, ok := r.schemas[name+"/"+version]
	if !ok {
		return fmt.Errorf("schema '%s' version '%s' not found", name, version)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// Has сообщает, зарегистрирована ли схема.
func (r *Registry) Has(name, version string) bool {
	_, ok := r.schemas[name+"/"+version]
	return ok
}
