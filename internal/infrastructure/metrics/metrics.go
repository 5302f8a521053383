// Package metrics provides Prometheus metrics for the chat server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveConnections tracks the number of open websocket connections.
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_active_connections",
			Help: "Number of currently open websocket connections",
		},
	)

	// JoinedUsers tracks how many connections have completed a join.
	JoinedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_joined_users",
			Help: "Number of connections that have joined with a nickname",
		},
	)

	// MessagesStored counts persisted chat messages.
	MessagesStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_stored_total",
			Help: "Total number of chat messages persisted",
		},
	)

	// MessagesDropped counts messages rejected because persistence failed.
	MessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_dropped_total",
			Help: "Total number of chat messages dropped on persistence failure",
		},
	)

	// BroadcastsSent counts hub fan-out events by kind.
	BroadcastsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_broadcasts_sent_total",
			Help: "Total number of events broadcast to all clients",
		},
		[]string{"event"},
	)

	// ImageUploads counts upload attempts by outcome.
	ImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_image_uploads_total",
			Help: "Total number of image upload attempts",
		},
		[]string{"status"},
	)

	// AssistantReplies counts AI chat requests by outcome.
	AssistantReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_assistant_replies_total",
			Help: "Total number of assistant reply requests",
		},
		[]string{"status"},
	)
)

// RecordConnect increments the connection gauge.
func RecordConnect() {
	ActiveConnections.Inc()
}

// RecordDisconnect decrements the connection gauge.
func RecordDisconnect() {
	ActiveConnections.Dec()
}

// RecordBroadcast records one fan-out of the named event.
func RecordBroadcast(event string) {
	BroadcastsSent.WithLabelValues(event).Inc()
}
