package main

import (
	"net/http"
	"time"

	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/ledger"
	"hbs/src/models"
	"hbs/src/types"

	"github.com/gin-gonic/gin"
)

// catalogHandlers are the unauthenticated browse endpoints.
func catalogHandlers(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.
		GET("/properties", func(ctx *gin.Context) {
			db := db.GetDb()
			var properties []models.Property
			q := db.
				Model(&models.Property{}).
				Where(&models.Property{Status: types.PROPERTY_LIVE}).
				Preload("RoomTypes")
			if city := ctx.Query("city"); city != "" {
				q = q.Where("city = ?", city)
			}
			if err := q.Limit(100).Find(&properties).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
		}).
		GET("/properties/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var property models.Property
			if err := db.
				Where(&models.Property{ID: params.ID, Status: types.PROPERTY_LIVE}).
				Preload("RoomTypes").
				First(&property).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": property})
		}).
		GET("/room-types/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var query types.AvailabilityQueryParams
			if err := ctx.BindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, query.CheckIn)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in date"})
				return
			}
			checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, query.CheckOut)
			if err != nil || !checkOut.After(checkIn) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out date"})
				return
			}
			db := db.GetDb()
			var rt models.RoomType
			if err := db.Where(&models.RoomType{ID: params.ID}).First(&rt).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			free, err := ledger.Available(db, &rt, checkIn, checkOut)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"room_type": rt.ID,
				"available": free,
				"total":     rt.TotalInventory,
			})
		})
	return apiv1
}
