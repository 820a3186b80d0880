package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/internal/realtime"
	"github.com/airwavefm/radio-backend/internal/service"
	"github.com/airwavefm/radio-backend/internal/storage"
	"github.com/airwavefm/radio-backend/pkg/config"
	"github.com/airwavefm/radio-backend/pkg/middleware"
)

// Handlers contains the HTTP handlers for the public API
type Handlers struct {
	cfg      *config.Config
	services *service.Services
	hub      *realtime.Hub
	registry *realtime.Registry
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(cfg *config.Config, services *service.Services, hub *realtime.Hub,
	registry *realtime.Registry, logger *zap.Logger) *Handlers {
	return &Handlers{
		cfg:      cfg,
		services: services,
		hub:      hub,
		registry: registry,
		logger:   logger.Named("api"),
	}
}

// StatusResponse is returned by /health and /status.
type StatusResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Connections int    `json:"connections"`
	Rooms       int    `json:"rooms"`
}

// RegisterRoutes adds all API routes to the router
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Status)
	router.GET("/status", h.Status)

	router.GET("/ws/:room", h.hub.HandleConnection)

	router.Static(h.cfg.Uploads.ServedUnder, h.cfg.Uploads.Dir)

	authRequired := middleware.AuthMiddleware(h.cfg, h.logger)
	privilegedOnly := middleware.RequireRole(domain.RoleDJ, domain.RoleAdmin)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.GET("/me", authRequired, h.Me)
		}

		stations := api.Group("/stations")
		{
			stations.GET("", h.ListStations)
			stations.POST("", authRequired, h.CreateStation)
			stations.GET("/:slug", h.GetStation)
			stations.GET("/:slug/songs", h.ListStationSongs)
			stations.POST("/:slug/songs", authRequired, h.UploadSong)
		}

		artists := api.Group("/artists")
		{
			artists.GET("", h.ListArtists)
			artists.POST("", h.SubmitArtist)
			artists.POST("/:id/approve", authRequired, privilegedOnly, h.ApproveArtist)
		}

		songs := api.Group("/songs")
		{
			songs.GET("", h.ListSongs)
			songs.GET("/:id", h.GetSong)
			songs.POST("/:id/approve", authRequired, privilegedOnly, h.ApproveSong)
		}

		playlists := api.Group("/playlists")
		{
			playlists.GET("", h.ListPlaylists)
			playlists.POST("", authRequired, h.CreatePlaylist)
			playlists.GET("/:id", h.GetPlaylist)
			playlists.POST("/:id/songs", authRequired, h.AddPlaylistSong)
		}

		schedule := api.Group("/schedule")
		{
			schedule.GET("", h.ListSchedule)
			schedule.GET("/now", h.CurrentShow)
			schedule.POST("", authRequired, privilegedOnly, h.CreateSchedule)
		}

		live := api.Group("/live", authRequired, privilegedOnly)
		{
			live.POST("/start", h.StartLive)
			live.POST("/stop", h.StopLive)
		}
	}
}

// Status returns service health plus realtime occupancy.
// GET /health, GET /status
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:      "ok",
		Service:     "radio-backend",
		Connections: h.registry.ConnectionCount(),
		Rooms:       h.registry.RoomCount(),
	})
}

// Register creates a new account
// POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.services.User.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		default:
			h.logger.Error("Failed to register user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a user
// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.services.User.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.logger.Error("Failed to login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated caller's account
// GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to get user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListStations returns all stations
// GET /api/stations
func (h *Handlers) ListStations(c *gin.Context) {
	stations, err := h.services.Station.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list stations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

// CreateStation creates a station owned by the caller
// POST /api/stations
func (h *Handlers) CreateStation(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req domain.StationCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	station, err := h.services.Station.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrStationExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Station name already taken"})
			return
		}
		h.logger.Error("Failed to create station", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create station"})
		return
	}

	c.JSON(http.StatusCreated, station)
}

// GetStation returns a station by slug
// GET /api/stations/:slug
func (h *Handlers) GetStation(c *gin.Context) {
	station, err := h.services.Station.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		h.logger.Error("Failed to get station", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get station"})
		return
	}

	c.JSON(http.StatusOK, station)
}

// ListStationSongs returns a station's approved songs
// GET /api/stations/:slug/songs
func (h *Handlers) ListStationSongs(c *gin.Context) {
	ctx := c.Request.Context()

	station, err := h.services.Station.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		h.logger.Error("Failed to get station", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get station"})
		return
	}

	songs, err := h.services.Song.Find(ctx, domain.SongFilter{
		StationID:    station.ID,
		Genre:        c.Query("genre"),
		ApprovedOnly: true,
	})
	if err != nil {
		h.logger.Error("Failed to list songs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list songs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// UploadSong submits a song to a station. Accepts multipart form data
// with either a file part or an external_url field.
// POST /api/stations/:slug/songs
func (h *Handlers) UploadSong(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	station, err := h.services.Station.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
			return
		}
		h.logger.Error("Failed to get station", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get station"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	duration := 0
	if raw := c.PostForm("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration"})
			return
		}
	}

	upload := &service.SongUpload{
		Title:       title,
		ArtistID:    identity.UserID,
		ArtistName:  identity.Username,
		StationID:   station.ID,
		Genre:       c.PostForm("genre"),
		Duration:    duration,
		Source:      domain.SongSource(c.PostForm("source")),
		ExternalURL: c.PostForm("external_url"),
	}
	if name := c.PostForm("artist_name"); name != "" {
		upload.ArtistName = name
	}
	if file, err := c.FormFile("file"); err == nil {
		upload.File = file
	}

	song, err := h.services.Song.Upload(ctx, upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingAudio), errors.Is(err, service.ErrInvalidDuration):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		default:
			h.logger.Error("Failed to upload song", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload song"})
		}
		return
	}

	c.JSON(http.StatusCreated, song)
}

// ListArtists returns artist profiles. Approved only unless the
// approved_only=false query is set, which requires no auth but only
// affects what the store returns.
// GET /api/artists
func (h *Handlers) ListArtists(c *gin.Context) {
	approvedOnly := c.DefaultQuery("approved_only", "true") != "false"

	artists, err := h.services.Artist.GetAll(c.Request.Context(), approvedOnly)
	if err != nil {
		h.logger.Error("Failed to list artists", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list artists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

// SubmitArtist submits an artist profile for approval
// POST /api/artists
func (h *Handlers) SubmitArtist(c *gin.Context) {
	var req domain.ArtistSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artist, err := h.services.Artist.Submit(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to submit artist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit artist"})
		return
	}

	c.JSON(http.StatusCreated, artist)
}

// ApproveArtist marks an artist profile approved
// POST /api/artists/:id/approve
func (h *Handlers) ApproveArtist(c *gin.Context) {
	artist, err := h.services.Artist.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
			return
		}
		h.logger.Error("Failed to approve artist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve artist"})
		return
	}

	c.JSON(http.StatusOK, artist)
}

// ListSongs returns songs matching the query filters
// GET /api/songs
func (h *Handlers) ListSongs(c *gin.Context) {
	songs, err := h.services.Song.Find(c.Request.Context(), domain.SongFilter{
		StationID:    c.Query("station_id"),
		Genre:        c.Query("genre"),
		ApprovedOnly: c.DefaultQuery("approved_only", "true") != "false",
	})
	if err != nil {
		h.logger.Error("Failed to list songs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list songs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// GetSong returns a song by id
// GET /api/songs/:id
func (h *Handlers) GetSong(c *gin.Context) {
	song, err := h.services.Song.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
			return
		}
		h.logger.Error("Failed to get song", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get song"})
		return
	}

	c.JSON(http.StatusOK, song)
}

// ApproveSong marks a song approved
// POST /api/songs/:id/approve
func (h *Handlers) ApproveSong(c *gin.Context) {
	song, err := h.services.Song.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
			return
		}
		h.logger.Error("Failed to approve song", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve song"})
		return
	}

	c.JSON(http.StatusOK, song)
}

// ListPlaylists returns all playlists
// GET /api/playlists
func (h *Handlers) ListPlaylists(c *gin.Context) {
	playlists, err := h.services.Playlist.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list playlists", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list playlists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"playlists": playlists})
}

// CreatePlaylist creates a playlist owned by the caller
// POST /api/playlists
func (h *Handlers) CreatePlaylist(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req domain.PlaylistCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playlist, err := h.services.Playlist.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		h.logger.Error("Failed to create playlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create playlist"})
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

// GetPlaylist returns a playlist expanded with its song records
// GET /api/playlists/:id
func (h *Handlers) GetPlaylist(c *gin.Context) {
	playlist, err := h.services.Playlist.GetWithSongs(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
			return
		}
		h.logger.Error("Failed to get playlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get playlist"})
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// AddPlaylistSongRequest is the body for adding a song to a playlist.
type AddPlaylistSongRequest struct {
	SongID string `json:"song_id" binding:"required"`
}

// AddPlaylistSong appends a song to a playlist
// POST /api/playlists/:id/songs
func (h *Handlers) AddPlaylistSong(c *gin.Context) {
	var req AddPlaylistSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Playlist.AddSong(c.Request.Context(), c.Param("id"), req.SongID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Playlist or song not found"})
			return
		}
		h.logger.Error("Failed to add song to playlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add song"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

// ListSchedule returns all show slots ordered by start time
// GET /api/schedule
func (h *Handlers) ListSchedule(c *gin.Context) {
	schedules, err := h.services.Schedule.GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": schedules})
}

// CurrentShow returns the show on air right now
// GET /api/schedule/now
func (h *Handlers) CurrentShow(c *gin.Context) {
	current, err := h.services.Schedule.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"show": nil})
			return
		}
		h.logger.Error("Failed to get current show", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get current show"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"show": current})
}

// CreateSchedule schedules a show
// POST /api/schedule
func (h *Handlers) CreateSchedule(c *gin.Context) {
	var req domain.ScheduleCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.services.Schedule.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		default:
			h.logger.Error("Failed to create schedule", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule"})
		}
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// StartLive marks the caller's current slot live
// POST /api/live/start
func (h *Handlers) StartLive(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	schedule, err := h.services.Schedule.StartLive(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "No scheduled slot covers the current time"})
			return
		}
		h.logger.Error("Failed to start live stream", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start live stream"})
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// StopLive clears the caller's live flag
// POST /api/live/stop
func (h *Handlers) StopLive(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	schedule, err := h.services.Schedule.StopLive(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotLive) {
			c.JSON(http.StatusConflict, gin.H{"error": "Not currently live"})
			return
		}
		h.logger.Error("Failed to stop live stream", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop live stream"})
		return
	}

	c.JSON(http.StatusOK, schedule)
}
