// internal/handlers/game.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamebazaar/gamebazaar-backend/internal/services"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type GameHandler struct {
	gameService    *services.GameService
	storageService *services.StorageService
}

func NewGameHandler(gameService *services.GameService, storageService *services.StorageService) *GameHandler {
	return &GameHandler{
		gameService:    gameService,
		storageService: storageService,
	}
}

// GET /games
func (h *GameHandler) GetGames(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	games, total, err := h.gameService.ListGames(c.Request.URL.Query(), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(games, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /games/popular
func (h *GameHandler) GetPopularGames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	if limit < 1 || limit > 50 {
		limit = 8
	}

	games, err := h.gameService.GetPopularGames(limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, games)
}

// GET /games/featured
func (h *GameHandler) GetFeaturedGames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	if limit < 1 || limit > 50 {
		limit = 8
	}

	games, err := h.gameService.GetFeaturedGames(limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, games)
}

// GET /games/:id
func (h *GameHandler) GetGame(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	game, err := h.gameService.GetGame(id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, game)
}

// POST /games (admin)
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req services.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	game, err := h.gameService.CreateGame(&req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, game)
}

// PUT /games/:id (admin)
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	var req services.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	game, err := h.gameService.UpdateGame(id, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, game)
}

// DELETE /games/:id (admin)
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	if err := h.gameService.DeleteGame(id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Game deleted"})
}

// POST /games/images (admin)
func (h *GameHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	result, err := h.storageService.UploadFile(file, header, h.storageService.GetDefaultUploadOptions("games"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, result)
}
