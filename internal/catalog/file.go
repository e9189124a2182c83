package catalog

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ledgercat/ledgercat/internal/model"
)

// categoryDef mirrors one catalog file entry.
type categoryDef struct {
	ID        string `mapstructure:"id"`
	Name      string `mapstructure:"name"`
	GroupID   string `mapstructure:"group_id"`
	GroupName string `mapstructure:"group"`
}

// FromFile loads a catalog from a YAML file of the form:
//
//	categories:
//	  - id: groc_01
//	    name: Supermarkets and grocery stores
//	    group_id: food
//	    group: Food
func FromFile(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var defs []categoryDef
	if err := v.UnmarshalKey("categories", &defs); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	categories := make([]model.Category, 0, len(defs))
	for _, d := range defs {
		categories = append(categories, model.Category{
			ID:        d.ID,
			Name:      d.Name,
			GroupID:   d.GroupID,
			GroupName: d.GroupName,
		})
	}

	return New(categories)
}
