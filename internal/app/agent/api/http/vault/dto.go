package vault

import (
	"gophvault/internal/domain/record"
)

type idInput struct {
	ID string `path:"id" doc:"Идентификатор записи (UUID)"`
}

type createItemInput struct {
	Body record.CreateItemRequest
}

type updateItemInput struct {
	ID   string `path:"id" doc:"Идентификатор элемента"`
	Body record.UpdateItemRequest
}

type folderInput struct {
	Body record.FolderRequest
}

type updateFolderInput struct {
	ID   string `path:"id" doc:"Идентификатор папки"`
	Body record.FolderRequest
}

type itemOutput struct {
	Body *record.Item
}

type itemsOutput struct {
	Body itemsResponse
}

type itemsResponse struct {
	Items []record.Item `json:"items"`
	Count int           `json:"count"`
}

type folderOutput struct {
	Body *record.Folder
}

type foldersOutput struct {
	Body foldersResponse
}

type foldersResponse struct {
	Folders []record.Folder `json:"folders"`
	Count   int             `json:"count"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status" example:"Ok"`
}

func items(list []record.Item) *itemsOutput {
	if list == nil {
		list = []record.Item{}
	}
	return &itemsOutput{Body: itemsResponse{Items: list, Count: len(list)}}
}

func folders(list []record.Folder) *foldersOutput {
	if list == nil {
		list = []record.Folder{}
	}
	return &foldersOutput{Body: foldersResponse{Folders: list, Count: len(list)}}
}
