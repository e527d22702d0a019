package cms

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldType names a document field type of the hosted store.
type FieldType string

const (
	TypeString       FieldType = "string"
	TypeSlug         FieldType = "slug"
	TypeReference    FieldType = "reference"
	TypeImage        FieldType = "image"
	TypeText         FieldType = "text"
	TypeArray        FieldType = "array"
	TypeDatetime     FieldType = "datetime"
	TypeBlockContent FieldType = "blockContent"
	TypeDocument     FieldType = "document"
)

// Choice is one entry of a fixed option list.
type Choice struct {
	Title string `yaml:"title" json:"title"`
	Value string `yaml:"value" json:"value"`
}

// Field describes one document field.
type Field struct {
	Name        string    `yaml:"name" json:"name"`
	Title       string    `yaml:"title" json:"title"`
	Type        FieldType `yaml:"type" json:"type"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool      `yaml:"required,omitempty" json:"required,omitempty"`
	MaxLength   int       `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Source      string    `yaml:"source,omitempty" json:"source,omitempty"`
	Hotspot     bool      `yaml:"hotspot,omitempty" json:"hotspot,omitempty"`
	To          []string  `yaml:"to,omitempty" json:"to,omitempty"`
	Of          []Field   `yaml:"of,omitempty" json:"of,omitempty"`
	Initial     string    `yaml:"initialValue,omitempty" json:"initialValue,omitempty"`
	Choices     []Choice  `yaml:"list,omitempty" json:"list,omitempty"`
	Layout      string    `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// PreviewSelect selects the fields shown in document listings.
type PreviewSelect struct {
	Select map[string]string `yaml:"select" json:"select"`
}

// DocumentType describes a document shape of the hosted store.
type DocumentType struct {
	Name    string        `yaml:"name" json:"name"`
	Title   string        `yaml:"title" json:"title"`
	Type    FieldType     `yaml:"type" json:"type"`
	Fields  []Field       `yaml:"fields" json:"fields"`
	Preview PreviewSelect `yaml:"preview" json:"preview"`
}

// Field looks a field up by name.
func (d DocumentType) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// PostSchema returns the blog post document type.
func PostSchema() DocumentType {
	choices := make([]Choice, 0, 3)
	for _, s := range Statuses() {
		choices = append(choices, Choice{Title: s.Label(), Value: string(s)})
	}

	return DocumentType{
		Name:  "post",
		Title: "Post",
		Type:  TypeDocument,
		Fields: []Field{
			{Name: "title", Title: "Título", Type: TypeString, Required: true},
			{Name: "slug", Title: "Slug", Type: TypeSlug, Required: true, Source: "title", MaxLength: SlugMaxLength},
			{Name: "author", Title: "Autor", Type: TypeReference, To: []string{"author"}},
			{Name: "mainImage", Title: "Imagem Principal", Type: TypeImage, Hotspot: true},
			{Name: "excerpt", Title: "Resumo", Type: TypeText, MaxLength: 200,
				Description: "Breve descrição do post para exibição em listagens"},
			{Name: "categories", Title: "Categorias", Type: TypeArray,
				Of: []Field{{Type: TypeReference, To: []string{"category"}}}},
			{Name: "publishedAt", Title: "Data de Publicação", Type: TypeDatetime, Required: true},
			{Name: "readTime", Title: "Tempo de Leitura", Type: TypeString, Initial: "5 min",
				Description: `Ex: "5 min"`},
			{Name: "status", Title: "Status", Type: TypeString, Required: true, Initial: string(StatusDraft),
				Choices: choices, Layout: "radio"},
			{Name: "body", Title: "Conteúdo", Type: TypeBlockContent, Required: true},
		},
		Preview: PreviewSelect{Select: map[string]string{
			"title":  "title",
			"author": "author.name",
			"media":  "mainImage",
			"status": "status",
		}},
	}
}

// EncodeYAML renders a document type as YAML.
func EncodeYAML(doc DocumentType) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("cms: encode schema: %w", err)
	}
	return out, nil
}

// LoadSchema parses a YAML document type.
func LoadSchema(data []byte) (DocumentType, error) {
	var doc DocumentType
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return DocumentType{}, fmt.Errorf("cms: decode schema: %w", err)
	}
	if doc.Name == "" {
		return DocumentType{}, fmt.Errorf("cms: decode schema: missing name")
	}
	return doc, nil
}
