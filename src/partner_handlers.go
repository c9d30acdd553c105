package main

import (
	"log"
	"net/http"

	"hbs/src/db"
	"hbs/src/middlewares"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ownBooking loads a booking only when its property belongs to the
// authenticated partner.
func ownBooking(tx *gorm.DB, bookingID, partnerID uint) (*models.Booking, error) {
	var b models.Booking
	err := tx.
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("bookings.id = ? AND properties.partner_id = ?", bookingID, partnerID).
		First(&b).
		Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func partnerHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	partner := g.Group("/partner")
	partner.Use(middlewares.RequireRole("partner"))
	partner.
		GET("/properties", func(ctx *gin.Context) {
			partnerId := ctx.GetUint("id")
			db := db.GetDb()
			var properties []models.Property
			err := db.
				Model(&models.Property{}).
				Where(&models.Property{PartnerID: partnerId}).
				Preload("RoomTypes").
				Find(&properties).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
		}).
		POST("/properties", func(ctx *gin.Context) {
			var body types.CreatePropertyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			partnerId := ctx.GetUint("id")
			db := db.GetDb()
			s, err := utils.PropertySlug(db, body.Name)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			property := models.Property{
				Name:      body.Name,
				Slug:      s,
				Type:      types.PropertyType(body.Type),
				About:     &body.About,
				City:      body.City,
				Address:   body.Address,
				Status:    types.PROPERTY_DRAFT,
				PartnerID: partnerId,
			}
			if err := db.Create(&property).Error; err != nil {
				log.Printf("Could not create property: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": property})
		}).
		PUT("/properties/:id/live", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			partnerId := ctx.GetUint("id")
			db := db.GetDb()
			var property models.Property
			if err := db.
				Where(&models.Property{ID: params.ID, PartnerID: partnerId}).
				First(&property).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			var roomTypes int64
			db.Model(&models.RoomType{}).Where(&models.RoomType{PropertyID: property.ID}).Count(&roomTypes)
			if roomTypes == 0 {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "property has no room types"})
				return
			}
			if err := db.
				Model(&property).
				Update("status", types.PROPERTY_LIVE).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": property})
		}).
		POST("/room-types", func(ctx *gin.Context) {
			var body types.CreateRoomTypeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			partnerId := ctx.GetUint("id")
			db := db.GetDb()
			var property models.Property
			if err := db.
				Where(&models.Property{ID: body.PropertyID, PartnerID: partnerId}).
				First(&property).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			rt := models.RoomType{
				PropertyID:      property.ID,
				Name:            body.Name,
				Unit:            types.UnitForPropertyType(property.Type),
				PricePerNight:   body.PricePerNight,
				ExtraAdultPrice: body.ExtraAdultPrice,
				ExtraChildPrice: body.ExtraChildPrice,
				MaxAdults:       body.MaxAdults,
				MaxChildren:     body.MaxChildren,
				TotalInventory:  body.TotalInventory,
			}
			if err := db.Create(&rt).Error; err != nil {
				log.Printf("Could not create room type: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": rt})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			partnerId := ctx.GetUint("id")
			db := db.GetDb()
			var bookings []models.Booking
			err := db.
				Joins("JOIN properties ON properties.id = bookings.property_id").
				Where("properties.partner_id = ?", partnerId).
				Preload("Property").
				Preload("RoomType").
				Preload("User").
				Order("bookings.created_at DESC").
				Find(&bookings).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/bookings/:id/confirm", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			partnerId := ctx.GetUint("id")
			db := db.GetDb()
			b, err := ownBooking(db, params.ID, partnerId)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if b.PaymentMethod != types.PAY_AT_HOTEL {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "online bookings confirm through the payment callback"})
				return
			}
			if err := bookingSvc.Confirm(b.ID, nil); err != nil {
				log.Printf("Could not confirm booking %d: %s\n", b.ID, err.Error())
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/bookings/:id/reject", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CancelBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			partnerId := ctx.GetUint("id")
			db := db.GetDb()
			b, err := ownBooking(db, params.ID, partnerId)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if err := bookingSvc.Reject(b.ID, body.Reason); err != nil {
				log.Printf("Could not reject booking %d: %s\n", b.ID, err.Error())
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/bookings/:id/check-in", func(ctx *gin.Context) {
			transitionRoute(ctx, types.BOOKING_CHECKED_IN)
		}).
		PUT("/bookings/:id/check-out", func(ctx *gin.Context) {
			transitionRoute(ctx, types.BOOKING_CHECKED_OUT)
		}).
		PUT("/bookings/:id/complete", func(ctx *gin.Context) {
			transitionRoute(ctx, types.BOOKING_COMPLETED)
		})
	return g
}

func transitionRoute(ctx *gin.Context, to types.BookingStatus) {
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.Status(http.StatusBadRequest)
		return
	}
	partnerId := ctx.GetUint("id")
	db := db.GetDb()
	b, err := ownBooking(db, params.ID, partnerId)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := bookingSvc.Transition(b.ID, to); err != nil {
		log.Printf("Could not move booking %d to %s: %s\n", b.ID, to, err.Error())
		ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}
