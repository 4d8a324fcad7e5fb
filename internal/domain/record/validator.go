package record

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxFolderNameLen = 255
	// MaxEncryptedDataLen ограничивает размер шифротекста одного элемента (1 MiB)
	MaxEncryptedDataLen = 1 << 20
)

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EncryptedData, validation.Required, validation.Length(1, MaxEncryptedDataLen)),
		validation.Field(&r.Type, validation.Required, validation.In(itemTypes...)),
		validation.Field(&r.FolderID, validation.NilOrNotEmpty),
	)
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EncryptedData, validation.Required, validation.Length(1, MaxEncryptedDataLen)),
		validation.Field(&r.Type, validation.Required, validation.In(itemTypes...)),
		validation.Field(&r.FolderID, validation.NilOrNotEmpty),
	)
}

func (r FolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxFolderNameLen)),
	)
}
