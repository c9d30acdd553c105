package main

import (
	"fmt"
	"log"
	"net/http"

	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var bookings []models.Booking
			err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{UserID: userId}).
				Preload("Property").
				Preload("RoomType").
				Order("created_at DESC").
				Find(&bookings).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var b models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID, UserID: userId}).
				Preload("Property").
				Preload("RoomType").
				First(&b).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": b})
		}).
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			b, err := bookingSvc.Create(userId, &body)
			if err != nil {
				log.Printf("Could not create booking: %s\n", err.Error())
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			res := gin.H{"data": b}
			if b.PaymentMethod == types.PAY_ONLINE {
				session, err := lib.CreateBookingCheckout(
					b.OrderID,
					fmt.Sprintf("Booking #%d", b.ID),
					b.TotalAmount,
					map[string]string{"booking_id": fmt.Sprint(b.ID), "order_id": b.OrderID},
				)
				if err != nil {
					// The booking stays pending; the guest can retry
					// checkout until the expiry sweep claims it.
					log.Printf("Could not create checkout for booking %d: %s\n", b.ID, err.Error())
				} else {
					res["checkout_url"] = session.URL
				}
			}
			ctx.JSON(http.StatusCreated, res)
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CancelBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var b models.Booking
			if err := db.
				Where(&models.Booking{ID: params.ID, UserID: userId}).
				First(&b).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if err := bookingSvc.Cancel(b.ID, body.Reason); err != nil {
				log.Printf("Could not cancel booking %d: %s\n", b.ID, err.Error())
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
