// Package catalog ships the fixed content the app serves: wellness
// exercises, selectable emotion types, support resources and the
// psychoeducation corpus the retrieval index is built from. Content is
// embedded at build time and never user-editable.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/serenity-health/serenity/internal/domain"
)

//go:embed *.yaml
var filesFS embed.FS

type Resource struct {
	Name        string `yaml:"name" json:"name"`
	Kind        string `yaml:"kind" json:"kind"`
	Contact     string `yaml:"contact,omitempty" json:"contact,omitempty"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty"`
	Description string `yaml:"description" json:"description"`
}

// Document is one corpus entry the BM25 index ranks.
type Document struct {
	ID    string   `yaml:"id" json:"id"`
	Title string   `yaml:"title" json:"title"`
	Text  string   `yaml:"text" json:"text"`
	Tags  []string `yaml:"tags" json:"tags"`
}

type Catalog struct {
	Exercises []domain.WellnessExercise
	Emotions  []domain.EmotionType
	Resources map[string][]Resource
	Corpus    []Document

	exercisesBySlug map[string]*domain.WellnessExercise
	emotionsBySlug  map[string]*domain.EmotionType
}

func Load() (*Catalog, error) {
	c := &Catalog{
		exercisesBySlug: map[string]*domain.WellnessExercise{},
		emotionsBySlug:  map[string]*domain.EmotionType{},
	}

	if err := loadYAML("exercises.yaml", &c.Exercises); err != nil {
		return nil, err
	}
	if err := loadYAML("emotions.yaml", &c.Emotions); err != nil {
		return nil, err
	}
	if err := loadYAML("resources.yaml", &c.Resources); err != nil {
		return nil, err
	}
	if err := loadYAML("corpus.yaml", &c.Corpus); err != nil {
		return nil, err
	}

	for i := range c.Exercises {
		c.exercisesBySlug[c.Exercises[i].Slug] = &c.Exercises[i]
	}
	for i := range c.Emotions {
		c.emotionsBySlug[c.Emotions[i].Slug] = &c.Emotions[i]
	}
	return c, nil
}

func loadYAML(name string, out any) error {
	b, err := filesFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) Exercise(slug string) (*domain.WellnessExercise, bool) {
	ex, ok := c.exercisesBySlug[slug]
	return ex, ok
}

func (c *Catalog) Emotion(slug string) (*domain.EmotionType, bool) {
	em, ok := c.emotionsBySlug[slug]
	return em, ok
}

// ResourcesFor returns the resource list for a category, falling back to the
// general list when the category has none.
func (c *Catalog) ResourcesFor(category string) []Resource {
	if rs, ok := c.Resources[category]; ok {
		return rs
	}
	return c.Resources["general"]
}
