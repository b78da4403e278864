package handler

import (
	"tripcollab/internal/usecase"
	"tripcollab/pkg/config"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	discoveryHandler *DiscoveryHandler
	tripHandler      *TripHandler
	threadHandler    *ThreadHandler
	orderHandler     *OrderHandler
	paymentHandler   *PaymentHandler
	waitlistHandler  *WaitlistHandler
)

func Setup(
	cfg *config.Config,
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	discoveryUseCase *usecase.DiscoveryUseCase,
	tripUseCase *usecase.TripUseCase,
	messagingUseCase *usecase.MessagingUseCase,
	orderUseCase *usecase.OrderUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	waitlistUseCase *usecase.WaitlistUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase, cfg.MaxUploadSizeMB)
	discoveryHandler = NewDiscoveryHandler(discoveryUseCase)
	tripHandler = NewTripHandler(tripUseCase)
	threadHandler = NewThreadHandler(messagingUseCase)
	orderHandler = NewOrderHandler(orderUseCase, cfg.MaxDeliverableSizeMB)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	waitlistHandler = NewWaitlistHandler(waitlistUseCase, authUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetDiscoveryHandler() *DiscoveryHandler {
	return discoveryHandler
}

func GetTripHandler() *TripHandler {
	return tripHandler
}

func GetThreadHandler() *ThreadHandler {
	return threadHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetWaitlistHandler() *WaitlistHandler {
	return waitlistHandler
}
