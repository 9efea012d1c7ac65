// ABOUTME: Public catalog read endpoints registered on the huma API.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/store"
)

// registerCatalogRoutes wires up the public catalog endpoints.
//
//	GET /catalog            filtered album search
//	GET /catalog/{album_id} single album
func registerCatalogRoutes(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "search-catalog",
		Method:      http.MethodGet,
		Path:        "/catalog",
		Summary:     "Search the record library",
		Description: "Paginated album search with artist, title, and genre filters.",
		Tags:        []string{"Catalog"},
	}, searchCatalogHandler(s))

	huma.Register(api, huma.Operation{
		OperationID: "get-album",
		Method:      http.MethodGet,
		Path:        "/catalog/{album_id}",
		Summary:     "Get an album",
		Tags:        []string{"Catalog"},
	}, getAlbumHandler(s))
}

// AlbumResponse is the API representation of an albums row.
type AlbumResponse struct {
	ID          string `json:"id"`
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	Genre       string `json:"genre,omitempty"`
	Format      string `json:"format"`
	LibraryCode string `json:"library_code,omitempty"`
	AddedAt     string `json:"added_at"` // RFC3339
}

func albumResponse(a store.Album) AlbumResponse {
	return AlbumResponse{
		ID:          a.ID.String(),
		Artist:      a.Artist,
		Title:       a.Title,
		Genre:       a.Genre,
		Format:      a.Format,
		LibraryCode: a.LibraryCode,
		AddedAt:     a.AddedAt.Format(time.RFC3339),
	}
}

type searchCatalogInput struct {
	Artist string `query:"artist" doc:"Case-insensitive artist substring"`
	Title  string `query:"title"  doc:"Case-insensitive title substring"`
	Genre  string `query:"genre"  doc:"Exact genre, case-insensitive"`
	Limit  int32  `query:"limit"  default:"50" minimum:"1" maximum:"100"`
	Offset int32  `query:"offset" default:"0"  minimum:"0"`
}

type searchCatalogOutput struct {
	Body struct {
		Albums []AlbumResponse `json:"albums"`
	}
}

func searchCatalogHandler(s *store.Store) func(context.Context, *searchCatalogInput) (*searchCatalogOutput, error) {
	return func(ctx context.Context, in *searchCatalogInput) (*searchCatalogOutput, error) {
		albums, err := s.SearchCatalog(ctx, store.CatalogFilter{
			Artist: in.Artist,
			Title:  in.Title,
			Genre:  in.Genre,
			Limit:  in.Limit,
			Offset: in.Offset,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("catalog search failed")
		}
		out := &searchCatalogOutput{}
		out.Body.Albums = make([]AlbumResponse, 0, len(albums))
		for _, a := range albums {
			out.Body.Albums = append(out.Body.Albums, albumResponse(a))
		}
		return out, nil
	}
}

type getAlbumInput struct {
	AlbumID string `path:"album_id" format:"uuid"`
}

type getAlbumOutput struct {
	Body AlbumResponse
}

func getAlbumHandler(s *store.Store) func(context.Context, *getAlbumInput) (*getAlbumOutput, error) {
	return func(ctx context.Context, in *getAlbumInput) (*getAlbumOutput, error) {
		id, err := uuid.Parse(in.AlbumID)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid album_id")
		}
		album, err := s.GetAlbum(ctx, id)
		if err != nil {
			return nil, huma.Error500InternalServerError("album lookup failed")
		}
		if album == nil {
			return nil, huma.Error404NotFound("album not found")
		}
		return &getAlbumOutput{Body: albumResponse(*album)}, nil
	}
}
