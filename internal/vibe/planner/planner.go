// internal/vibe/planner/planner.go
package planner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	commonerrors "vibe-planner/internal/common/errors"
	"vibe-planner/internal/common/metrics"
	"vibe-planner/internal/common/validation"
	"vibe-planner/internal/models"
	"vibe-planner/internal/providers/books"
	"vibe-planner/internal/providers/geocode"
	"vibe-planner/internal/providers/omdb"
	"vibe-planner/internal/providers/places"
	"vibe-planner/internal/providers/spotify"
	"vibe-planner/internal/providers/youtube"
	"vibe-planner/internal/vibe/keywords"
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Searcher interfaces are satisfied by the provider handlers. The
// planner only needs the search calls, so tests can stand in for a
// provider without an HTTP stub.
type PlaylistSearcher interface {
	Search(ctx context.Context, query string) ([]models.Playlist, error)
}

type RecipeSearcher interface {
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

type BookSearcher interface {
	Search(ctx context.Context, query string) ([]models.Book, error)
}

type MovieSearcher interface {
	Search(ctx context.Context, query string, genreTerms []string) ([]models.Movie, error)
}

type CafeSearcher interface {
	SearchNearby(ctx context.Context, query string, coords models.Coordinates) ([]models.Cafe, error)
	SearchByText(ctx context.Context, query string, location string) ([]models.Cafe, error)
}

type Geocoder interface {
	Resolve(ctx context.Context, location string) (*models.Coordinates, error)
}

// Providers bundles the provider handlers the planner fans out to.
type Providers struct {
	Playlists PlaylistSearcher
	Recipes   RecipeSearcher
	Books     BookSearcher
	Movies    MovieSearcher
	Cafes     CafeSearcher
	Geocoder  Geocoder
}

// Planner turns one vibe description into a composite plan by querying
// every provider concurrently.
type Planner struct {
	playlists PlaylistSearcher
	recipes   RecipeSearcher
	books     BookSearcher
	movies    MovieSearcher
	cafes     CafeSearcher
	geocoder  Geocoder
	logger    Logger
}

func New(providers Providers, log Logger) *Planner {
	return &Planner{
		playlists: providers.Playlists,
		recipes:   providers.Recipes,
		books:     providers.Books,
		movies:    providers.Movies,
		cafes:     providers.Cafes,
		geocoder:  providers.Geocoder,
		logger: log.With(map[string]interface{}{
			"component": "planner",
		}),
	}
}

// Plan validates the request, derives the search query, fans out to all
// providers and assembles whatever came back. A failed provider
// degrades to an empty list; the only error Plan itself returns is a
// validation error, raised before any outbound call.
func (p *Planner) Plan(ctx context.Context, request *models.VibeRequest) (*models.VibeResponse, error) {
	validationResult := validation.ValidateVibeRequest(request.VibeDescription, request.Latitude, request.Longitude)
	if !validationResult.Valid {
		return nil, commonerrors.NewValidationError(strings.Join(validationResult.GetErrorMessages(), "; "))
	}

	query := keywords.Primary(request.VibeDescription)
	genreTerms := keywords.GenreTerms(request.VibeDescription)

	p.logger.Info("planning vibe", map[string]interface{}{
		"query":          query,
		"hasLocation":    request.HasLocation(),
		"hasCoordinates": request.HasCoordinates(),
	})

	var (
		playlists []models.Playlist
		recipes   []models.Recipe
		bookList  []models.Book
		movieList []models.Movie
		cafeList  []models.Cafe
		resolved  *models.Coordinates
	)

	// The cafe search is the only consumer of the coordinate
	// resolution, so the two run as a pipeline inside the fan-out.
	coordsCh := make(chan *models.Coordinates, 1)

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		playlists = p.searchPlaylists(ctx, query)
	}()
	go func() {
		defer wg.Done()
		recipes = p.searchRecipes(ctx, query)
	}()
	go func() {
		defer wg.Done()
		bookList = p.searchBooks(ctx, query)
	}()
	go func() {
		defer wg.Done()
		movieList = p.searchMovies(ctx, query, genreTerms)
	}()
	go func() {
		defer wg.Done()
		coordsCh <- p.resolveCoordinates(ctx, request)
	}()
	go func() {
		defer wg.Done()
		resolved = <-coordsCh
		cafeList = p.searchCafes(ctx, request, query, resolved)
	}()

	wg.Wait()

	response := &models.VibeResponse{
		Vibe:             request.VibeDescription,
		SpotifyPlaylists: playlists,
		YouTubeRecipes:   recipes,
		Books:            bookList,
		Movies:           movieList,
		Cafes:            cafeList,
		LocationInfo:     buildLocationInfo(request, resolved),
	}
	response.EnsureLists()

	return response, nil
}

func (p *Planner) searchPlaylists(ctx context.Context, query string) []models.Playlist {
	start := time.Now()
	result, err := p.playlists.Search(ctx, query)
	metrics.ProviderRequestDuration.WithLabelValues(spotify.ProviderName).Observe(time.Since(start).Seconds())
	if err != nil {
		p.recordFailure(spotify.ProviderName, err)
		return []models.Playlist{}
	}
	p.recordSuccess(spotify.ProviderName, len(result))
	return result
}

func (p *Planner) searchRecipes(ctx context.Context, query string) []models.Recipe {
	start := time.Now()
	result, err := p.recipes.Search(ctx, query)
	metrics.ProviderRequestDuration.WithLabelValues(youtube.ProviderName).Observe(time.Since(start).Seconds())
	if err != nil {
		p.recordFailure(youtube.ProviderName, err)
		return []models.Recipe{}
	}
	p.recordSuccess(youtube.ProviderName, len(result))
	return result
}

func (p *Planner) searchBooks(ctx context.Context, query string) []models.Book {
	start := time.Now()
	result, err := p.books.Search(ctx, query)
	metrics.ProviderRequestDuration.WithLabelValues(books.ProviderName).Observe(time.Since(start).Seconds())
	if err != nil {
		p.recordFailure(books.ProviderName, err)
		return []models.Book{}
	}
	p.recordSuccess(books.ProviderName, len(result))
	return result
}

func (p *Planner) searchMovies(ctx context.Context, query string, genreTerms []string) []models.Movie {
	start := time.Now()
	result, err := p.movies.Search(ctx, query, genreTerms)
	metrics.ProviderRequestDuration.WithLabelValues(omdb.ProviderName).Observe(time.Since(start).Seconds())
	if err != nil {
		p.recordFailure(omdb.ProviderName, err)
		return []models.Movie{}
	}
	p.recordSuccess(omdb.ProviderName, len(result))
	return result
}

func (p *Planner) searchCafes(ctx context.Context, request *models.VibeRequest, query string, coords *models.Coordinates) []models.Cafe {
	if coords == nil && !request.HasLocation() {
		return []models.Cafe{}
	}

	start := time.Now()
	var (
		result []models.Cafe
		err    error
	)
	if coords != nil {
		result, err = p.cafes.SearchNearby(ctx, query, *coords)
	} else {
		result, err = p.cafes.SearchByText(ctx, query, request.Location)
	}
	metrics.ProviderRequestDuration.WithLabelValues(places.ProviderName).Observe(time.Since(start).Seconds())
	if err != nil {
		p.recordFailure(places.ProviderName, err)
		return []models.Cafe{}
	}
	p.recordSuccess(places.ProviderName, len(result))
	return result
}

// resolveCoordinates prefers coordinates given directly on the request;
// otherwise it geocodes the location string. Returns nil when neither
// works out, which sends the cafe search down the text-based path.
func (p *Planner) resolveCoordinates(ctx context.Context, request *models.VibeRequest) *models.Coordinates {
	if request.HasCoordinates() {
		return &models.Coordinates{Lat: *request.Latitude, Lng: *request.Longitude}
	}
	if !request.HasLocation() {
		return nil
	}

	start := time.Now()
	coords, err := p.geocoder.Resolve(ctx, request.Location)
	metrics.ProviderRequestDuration.WithLabelValues(geocode.ProviderName).Observe(time.Since(start).Seconds())
	if err != nil {
		stdErr := geocodeError(request.Location, err)
		metrics.ProviderRequestsFailed.WithLabelValues(geocode.ProviderName, string(stdErr.Code)).Inc()
		p.logger.Warn("geocoding degraded, cafe search falls back to location text", map[string]interface{}{
			"location":  request.Location,
			"errorCode": string(stdErr.Code),
			"error":     err.Error(),
		})
		return nil
	}
	metrics.ProviderRequestsCompleted.WithLabelValues(geocode.ProviderName).Inc()
	return coords
}

func (p *Planner) recordFailure(provider string, err error) {
	stdErr := classifyError(provider, err)
	metrics.ProviderRequestsFailed.WithLabelValues(provider, string(stdErr.Code)).Inc()
	p.logger.Warn("provider degraded to empty results", map[string]interface{}{
		"provider":  provider,
		"errorCode": string(stdErr.Code),
		"error":     err.Error(),
	})
}

func (p *Planner) recordSuccess(provider string, resultCount int) {
	metrics.ProviderRequestsCompleted.WithLabelValues(provider).Inc()
	metrics.ProviderResultsReturned.WithLabelValues(provider).Observe(float64(resultCount))
}

// classifyError maps a provider error onto the error taxonomy so logs
// and metric labels carry a stable code instead of raw error text.
func classifyError(provider string, err error) *commonerrors.StandardError {
	switch provider {
	case spotify.ProviderName:
		switch {
		case errors.Is(err, spotify.ErrSpotifyAuthFailed):
			return commonerrors.NewSpotifyAuthFailedError(err)
		case errors.Is(err, spotify.ErrSpotifySearchTimeout):
			return commonerrors.NewSpotifySearchTimeoutError()
		}
		return commonerrors.NewSpotifySearchFailedError(err)
	case youtube.ProviderName:
		if errors.Is(err, youtube.ErrYouTubeSearchTimeout) {
			return commonerrors.NewYouTubeSearchTimeoutError()
		}
		return commonerrors.NewYouTubeSearchFailedError(err)
	case books.ProviderName:
		if errors.Is(err, books.ErrBooksSearchTimeout) {
			return commonerrors.NewBooksSearchTimeoutError()
		}
		return commonerrors.NewBooksSearchFailedError(err)
	case omdb.ProviderName:
		if errors.Is(err, omdb.ErrMovieSearchTimeout) {
			return commonerrors.NewMovieSearchTimeoutError()
		}
		return commonerrors.NewMovieSearchFailedError(err)
	case places.ProviderName:
		switch {
		case errors.Is(err, places.ErrPlacesSearchTimeout):
			return commonerrors.NewPlacesSearchTimeoutError()
		case errors.Is(err, places.ErrPlacesRequestDenied):
			return commonerrors.NewPlacesRequestDeniedError(err.Error())
		case errors.Is(err, places.ErrPlacesQuotaExceeded):
			return commonerrors.NewPlacesQuotaExceededError(err.Error())
		}
		return commonerrors.NewPlacesSearchFailedError(err)
	}
	return commonerrors.NewInternalError(err)
}

func geocodeError(location string, err error) *commonerrors.StandardError {
	if errors.Is(err, geocode.ErrGeocodeTimeout) {
		return commonerrors.NewGeocodeTimeoutError(location)
	}
	return commonerrors.NewGeocodeFailedError(location, err)
}

func buildLocationInfo(request *models.VibeRequest, resolved *models.Coordinates) models.LocationInfo {
	info := models.LocationInfo{Coordinates: resolved}
	if request.HasLocation() {
		location := request.Location
		info.Provided = &location
	}
	return info
}
