// Package reference содержит справочные данные, которые поставляются вместе с бинарником.
package reference

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed postal_codes.yaml
var postalCodesYAML []byte

// PostalDirectory хранит почтовые индексы по названию города.
type PostalDirectory struct {
	fallback string
	codes    map[string]string
	cities   []string
}

type postalFile struct {
	Default string            `yaml:"default"`
	Cities  map[string]string `yaml:"cities"`
}

var (
	defaultDirectory     *PostalDirectory
	defaultDirectoryErr  error
	defaultDirectoryOnce sync.Once
)

// ParsePostalDirectory разбирает YAML-справочник.
func ParsePostalDirectory(data []byte) (*PostalDirectory, error) {
	var file postalFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse postal codes: %w", err)
	}
	if file.Default == "" {
		return nil, fmt.Errorf("parse postal codes: default code is empty")
	}

	dir := &PostalDirectory{
		fallback: file.Default,
		codes:    make(map[string]string, len(file.Cities)),
		cities:   make([]string, 0, len(file.Cities)),
	}
	for city, code := range file.Cities {
		dir.codes[city] = code
		dir.cities = append(dir.cities, city)
	}
	sort.Strings(dir.cities)

	return dir, nil
}

// Postal возвращает встроенный справочник. Файл проверяется тестами, поэтому при ошибке разбора функция паникует.
func Postal() *PostalDirectory {
	defaultDirectoryOnce.Do(func() {
		defaultDirectory, defaultDirectoryErr = ParsePostalDirectory(postalCodesYAML)
	})
	if defaultDirectoryErr != nil {
		panic(defaultDirectoryErr)
	}
	return defaultDirectory
}

// Lookup ищет индекс: сначала точное совпадение, затем без учёта регистра.
// Для неизвестного или пустого города возвращается индекс по умолчанию.
func (d *PostalDirectory) Lookup(city string) string {
	if code, ok := d.codes[city]; ok {
		return code
	}
	if city != "" {
		for _, name := range d.cities {
			if strings.EqualFold(name, city) {
				return d.codes[name]
			}
		}
	}
	return d.fallback
}

// Cities возвращает отсортированный список городов.
func (d *PostalDirectory) Cities() []string {
	out := make([]string, len(d.cities))
	copy(out, d.cities)
	return out
}
