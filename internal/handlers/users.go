package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      Get public user data
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "user id"
// @Success      200  {object}  models.PublicUser
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /user/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.services.Users.GetByID(id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetUser, "user_get_failed", err, "id", id)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		return
	}

	c.JSON(http.StatusOK, user)
}
