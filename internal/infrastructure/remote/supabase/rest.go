package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/record"
)

var mergeDuplicates = map[string]string{"Prefer": "resolution=merge-duplicates"}

func (c *Client) UpsertItem(ctx context.Context, accessToken string, item record.ItemDTO) error {
	return c.upsert(ctx, accessToken, record.KindItem, item)
}

func (c *Client) UpsertFolder(ctx context.Context, accessToken string, folder record.FolderDTO) error {
	return c.upsert(ctx, accessToken, record.KindFolder, folder)
}

func (c *Client) upsert(ctx context.Context, accessToken string, kind record.EntityKind, row any) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/" + kind.String(),
		token:  accessToken,
		body:   row,
		header: mergeDuplicates,
	}, apperr.ErrSync)
	return err
}

// Delete удаляет строку по id. Отсутствие строки на сервере ошибкой не считается.
func (c *Client) Delete(ctx context.Context, accessToken string, kind record.EntityKind, id string) error {
	if !kind.Valid() {
		return apperr.InvalidOperation(fmt.Sprintf("неизвестная таблица %q", kind))
	}

	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/rest/v1/" + kind.String(),
		query:  url.Values{"id": {"eq." + id}},
		token:  accessToken,
	}, apperr.ErrSync)
	return err
}

func (c *Client) ListFolders(ctx context.Context, accessToken, userID string, since *time.Time) ([]record.FolderDTO, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/" + record.KindFolder.String(),
		query:  changesQuery(userID, since),
		token:  accessToken,
	}, apperr.ErrSync)
	if err != nil {
		return nil, err
	}
	return decode[[]record.FolderDTO](raw)
}

func (c *Client) ListItems(ctx context.Context, accessToken, userID string, since *time.Time) ([]record.ItemDTO, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/" + record.KindItem.String(),
		query:  changesQuery(userID, since),
		token:  accessToken,
	}, apperr.ErrSync)
	if err != nil {
		return nil, err
	}
	return decode[[]record.ItemDTO](raw)
}

// changesQuery - строки пользователя, измененные после since (все, если since == nil)
func changesQuery(userID string, since *time.Time) url.Values {
	q := url.Values{"user_id": {"eq." + userID}}
	if since != nil {
		q.Set("updated_at", "gt."+since.UTC().Format(time.RFC3339Nano))
	}
	return q
}
