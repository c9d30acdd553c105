package main

import (
	"log"
	"net/http"

	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/payments"
	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
)

// paymentCallbackRoute is hit by the payment gateway, not by users, so
// it lives outside the authorized group. The HMAC signature is the auth.
func paymentCallbackRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/payments/callback", func(ctx *gin.Context) {
		var body types.PaymentCallbackRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		db := db.GetDb()
		b, err := payments.Reconcile(db, bookingSvc, &body, config.GetGatewaySecret())
		if err != nil {
			log.Printf("Could not reconcile payment for order %s: %s\n", body.OrderID, err.Error())
			ctx.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": b})
	})
	return apiv1
}
