package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/middlewares"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"
	"hbs/src/wallet"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	admin := g.Group("/admin")
	admin.Use(middlewares.RequireRole("admin"))
	admin.
		GET("/bookings", func(ctx *gin.Context) {
			db := db.GetDb()
			var bookings []models.Booking
			q := db.
				Model(&models.Booking{}).
				Preload("Property").
				Preload("RoomType").
				Order("created_at DESC")
			if status := ctx.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			if err := q.Limit(200).Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/bookings/:id/override", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.OverrideBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminId := ctx.GetUint("id")
			to := types.BookingStatus(body.Status)
			if err := bookingSvc.AdminOverride(params.ID, to, adminId, body.Reason); err != nil {
				log.Printf("Could not override booking %d: %s\n", params.ID, err.Error())
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/withdrawals", func(ctx *gin.Context) {
			db := db.GetDb()
			var withdrawals []models.Withdrawal
			q := db.
				Model(&models.Withdrawal{}).
				Preload("Wallet").
				Order("created_at ASC")
			status := ctx.DefaultQuery("status", string(types.WITHDRAWAL_PENDING))
			if err := q.Where("status = ?", status).Find(&withdrawals).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": withdrawals, "count": len(withdrawals)})
		}).
		PUT("/withdrawals/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.ActionWithdrawalRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminId := ctx.GetUint("id")
			db := db.GetDb()
			wd, err := wallet.ActionWithdrawal(db, params.ID, body.Action == "approve", adminId, body.Remark)
			if err != nil {
				log.Printf("Could not action withdrawal %d: %s\n", params.ID, err.Error())
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": wd})
		}).
		GET("/offers", func(ctx *gin.Context) {
			db := db.GetDb()
			var offers []models.Offer
			if err := db.Model(&models.Offer{}).Order("created_at DESC").Find(&offers).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": offers, "count": len(offers)})
		}).
		POST("/offers", func(ctx *gin.Context) {
			var body types.CreateOfferRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			startsAt, err := time.Parse(config.DATE_PARSE_FORMAT, body.StartsAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid starts_at date"})
				return
			}
			endsAt, err := time.Parse(config.DATE_PARSE_FORMAT, body.EndsAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid ends_at date"})
				return
			}
			offer := models.Offer{
				Code:             body.Code,
				Kind:             types.OfferKind(body.Kind),
				Value:            body.Value,
				MaxDiscount:      body.MaxDiscount,
				MinBookingAmount: body.MinBookingAmount,
				UsageLimit:       body.UsageLimit,
				PerUserLimit:     body.PerUserLimit,
				StartsAt:         startsAt,
				EndsAt:           endsAt.Add(24*time.Hour - time.Second),
				Active:           true,
			}
			db := db.GetDb()
			if err := db.Create(&offer).Error; err != nil {
				log.Printf("Could not create offer: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": offer})
		}).
		PUT("/offers/:id/deactivate", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var offer models.Offer
			if err := db.Where(&models.Offer{ID: params.ID}).First(&offer).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			if err := db.Model(&offer).Update("active", false).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": offer})
		}).
		PUT("/settings", func(ctx *gin.Context) {
			var body types.UpdateSettingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := settings.Update(body.Key, body.Value); err != nil {
				log.Printf("Could not update setting %s: %s\n", body.Key, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/topup", func(ctx *gin.Context) {
			var body types.TopupRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			kind, err := types.ParseActorKind(body.Actor)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := types.ActorRef{Kind: kind, ID: body.ID}
			adminId := ctx.GetUint("id")
			database := db.GetDb()
			var txn *models.Transaction
			err = database.Transaction(func(tx *gorm.DB) error {
				w, err := wallet.GetOrCreate(tx, actor)
				if err != nil {
					return err
				}
				description := body.Remark
				if description == "" {
					description = fmt.Sprintf("Manual topup by admin %d", adminId)
				}
				txn, err = wallet.Credit(tx, w, body.Amount, types.TXN_TOPUP, description, fmt.Sprintf("admin:%d", adminId))
				return err
			})
			if err != nil {
				log.Printf("Could not topup wallet for %s: %s\n", actor.String(), err.Error())
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": txn})
		})
	return g
}
