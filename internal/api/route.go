package api

import (
	v1 "github.com/Behyna/saldo-service/internal/api/v1"
	"github.com/gofiber/fiber/v2"
)

const prefixV1 = "api/v1/"

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)

	app.Get(prefixV1+"saldos", handler.GetSaldos)
	app.Get(prefixV1+"saldos/user/:user_id", handler.GetUserSaldo)
	app.Get(prefixV1+"saldos/:id", handler.GetSaldo)

	app.Get(prefixV1+"topups", handler.GetTopups)
	app.Get(prefixV1+"topups/user/:user_id", handler.GetUserTopups)
	app.Get(prefixV1+"topups/:id", handler.GetTopup)
	app.Post(prefixV1+"topups", handler.CreateTopup)
	app.Put(prefixV1+"topups/:id", handler.UpdateTopup)
	app.Delete(prefixV1+"topups/:id", handler.DeleteTopup)

	app.Get(prefixV1+"transfers", handler.GetTransfers)
	app.Get(prefixV1+"transfers/user/:user_id", handler.GetUserTransfers)
	app.Get(prefixV1+"transfers/:id", handler.GetTransfer)
	app.Post(prefixV1+"transfers", handler.CreateTransfer)
	app.Put(prefixV1+"transfers/:id", handler.UpdateTransfer)
	app.Delete(prefixV1+"transfers/:id", handler.DeleteTransfer)

	app.Get(prefixV1+"withdraws", handler.GetWithdraws)
	app.Get(prefixV1+"withdraws/user/:user_id", handler.GetUserWithdraws)
	app.Get(prefixV1+"withdraws/:id", handler.GetWithdraw)
	app.Post(prefixV1+"withdraws", handler.CreateWithdraw)
	app.Put(prefixV1+"withdraws/:id", handler.UpdateWithdraw)
	app.Delete(prefixV1+"withdraws/:id", handler.DeleteWithdraw)
}
