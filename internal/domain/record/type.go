package record

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// ItemType - тип элемента хранилища. Содержимое элемента зашифровано,
// тип хранится открыто для фильтрации и иконок.
type ItemType string

const (
	TypeLogin    ItemType = "login"
	TypeNote     ItemType = "note"
	TypeCard     ItemType = "card"
	TypeIdentity ItemType = "identity"
)

var itemTypes = []any{TypeLogin, TypeNote, TypeCard, TypeIdentity}

// Schema реализует huma.SchemaProvider.
func (ItemType) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(TypeLogin),
			string(TypeNote),
			string(TypeCard),
			string(TypeIdentity),
		},
		Description: "Тип элемента хранилища",
		Examples:    []any{string(TypeLogin)},
	}
}

// Validate проверяет, что тип известен.
func (t ItemType) Validate() error {
	switch t {
	case TypeLogin, TypeNote, TypeCard, TypeIdentity:
		return nil
	}
	return fmt.Errorf("неверный тип элемента: %q", string(t))
}

func (t ItemType) String() string {
	return string(t)
}

// EntityKind - вид синхронизируемой сущности. Значение совпадает с именем
// таблицы на сервере.
type EntityKind string

const (
	KindItem   EntityKind = "vault_items"
	KindFolder EntityKind = "folders"
)

func (k EntityKind) Valid() bool {
	return k == KindItem || k == KindFolder
}

func (k EntityKind) String() string {
	return string(k)
}
