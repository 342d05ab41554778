package Iservices

type IBroadcastService interface {
	SendToAll(message string) (sent int, failed int)
}
