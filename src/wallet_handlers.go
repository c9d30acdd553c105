package main

import (
	"log"
	"net/http"

	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"
	"hbs/src/wallet"

	"github.com/gin-gonic/gin"
)

// actorFromContext maps the authenticated user onto the wallet actor
// space. Partners and admins hold wallets under their own kinds.
func actorFromContext(ctx *gin.Context) types.ActorRef {
	id := ctx.GetUint("id")
	switch ctx.GetString("role") {
	case "partner":
		return types.Partner(id)
	case "admin":
		return types.Admin(id)
	default:
		return types.Guest(id)
	}
}

func walletHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/wallet", func(ctx *gin.Context) {
			actor := actorFromContext(ctx)
			db := db.GetDb()
			w, err := wallet.GetOrCreate(db, actor)
			if err != nil {
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": w})
		}).
		GET("/wallet/transactions", func(ctx *gin.Context) {
			actor := actorFromContext(ctx)
			db := db.GetDb()
			var w models.Wallet
			if err := db.
				Where(&models.Wallet{ActorKind: actor.Kind, ActorID: actor.ID}).
				First(&w).
				Error; err != nil {
				ctx.JSON(http.StatusOK, gin.H{"data": []models.Transaction{}, "count": 0})
				return
			}
			var txns []models.Transaction
			if err := db.
				Model(&models.Transaction{}).
				Where(&models.Transaction{WalletID: w.ID}).
				Order("created_at DESC").
				Limit(100).
				Find(&txns).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txns, "count": len(txns)})
		}).
		POST("/wallet/withdrawals", func(ctx *gin.Context) {
			var body types.WithdrawalRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := actorFromContext(ctx)
			db := db.GetDb()
			wd, err := wallet.RequestWithdrawal(db, actor, body.Amount, settings.MinWithdrawalAmount())
			if err != nil {
				log.Printf("Could not request withdrawal for %s: %s\n", actor.String(), err.Error())
				ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": wd})
		}).
		GET("/wallet/withdrawals", func(ctx *gin.Context) {
			actor := actorFromContext(ctx)
			db := db.GetDb()
			var w models.Wallet
			if err := db.
				Where(&models.Wallet{ActorKind: actor.Kind, ActorID: actor.ID}).
				First(&w).
				Error; err != nil {
				ctx.JSON(http.StatusOK, gin.H{"data": []models.Withdrawal{}, "count": 0})
				return
			}
			var withdrawals []models.Withdrawal
			if err := db.
				Model(&models.Withdrawal{}).
				Where(&models.Withdrawal{WalletID: w.ID}).
				Order("created_at DESC").
				Find(&withdrawals).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": withdrawals, "count": len(withdrawals)})
		})
	return g
}
