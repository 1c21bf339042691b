package grpcapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service"
	"github.com/phrazzld/crud-suite/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// NotificationServiceName is the fully qualified gRPC service name.
const NotificationServiceName = "crudsuite.notifications.v1.NotificationService"

// Full method names, usable with grpc.ClientConn.Invoke.
const (
	NotificationServiceListMethod     = "/" + NotificationServiceName + "/List"
	NotificationServiceMarkReadMethod = "/" + NotificationServiceName + "/MarkRead"
)

// NotificationServiceServer is the server API for the notification service.
type NotificationServiceServer interface {
	List(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	MarkRead(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
}

// NotificationServer implements NotificationServiceServer on top of the
// notification service.
type NotificationServer struct {
	notifications service.NotificationService
	logger        *slog.Logger
}

var _ NotificationServiceServer = (*NotificationServer)(nil)

// NewNotificationServer creates a NotificationServer.
func NewNotificationServer(notifications service.NotificationService, logger *slog.Logger) *NotificationServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationServer{
		notifications: notifications,
		logger:        logger.With(slog.String("component", "grpc_notification_server")),
	}
}

// List returns a buyer's notifications, unread first.
func (s *NotificationServer) List(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// Requests are loosely typed structs: buyer_id, limit, offset
	fields := req.GetFields()

	buyerID, err := uuid.Parse(fields["buyer_id"].GetStringValue())
	if err != nil {
		return nil, toStatus(fmt.Errorf("%w: buyer_id must be a UUID", domain.ErrValidation))
	}
	// Numbers arrive as float64; Normalize clamps them to the allowed range
	page := store.Page{
		Limit:  int(fields["limit"].GetNumberValue()),
		Offset: int(fields["offset"].GetNumberValue()),
	}.Normalize()

	list, err := s.notifications.ListForBuyer(ctx, buyerID, page)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("list notifications failed", "error", err)
		return nil, toStatus(err)
	}

	// structpb only accepts []interface{} for list values
	items := make([]interface{}, 0, len(list))
	for _, n := range list {
		items = append(items, notificationFields(n))
	}
	out, err := structpb.NewStruct(map[string]interface{}{"notifications": items})
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}

// MarkRead marks one notification as read and returns it.
func (s *NotificationServer) MarkRead(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := uuid.Parse(req.GetValue())
	if err != nil {
		return nil, toStatus(fmt.Errorf("%w: id must be a UUID", domain.ErrValidation))
	}

	n, err := s.notifications.MarkRead(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := structpb.NewStruct(notificationFields(n))
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}

// notificationFields renders n as a structpb-compatible map. Timestamps are
// RFC 3339 strings and an unread notification has a null read_at.
func notificationFields(n *domain.Notification) map[string]interface{} {
	var readAt interface{}
	if n.ReadAt != nil {
		readAt = n.ReadAt.UTC().Format(time.RFC3339Nano)
	}
	return map[string]interface{}{
		"id":         n.ID.String(),
		"buyer_id":   n.BuyerID.String(),
		"message":    n.Message,
		"read_at":    readAt,
		"created_at": n.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// RegisterNotificationServer registers srv on s.
func RegisterNotificationServer(s grpc.ServiceRegistrar, srv NotificationServiceServer) {
	s.RegisterService(&notificationServiceDesc, srv)
}

// notificationServiceDesc is written by hand in the shape protoc-gen-go-grpc
// generates; the messages are well-known types so no generated code is needed.
var notificationServiceDesc = grpc.ServiceDesc{
	ServiceName: NotificationServiceName,
	HandlerType: (*NotificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: listHandler},
		{MethodName: "MarkRead", Handler: markReadHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "crudsuite/notifications/v1/notifications.proto",
}

// listHandler decodes the request and runs it through the interceptor chain.
func listHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotificationServiceServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: NotificationServiceListMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NotificationServiceServer).List(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// markReadHandler is listHandler for MarkRead.
func markReadHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotificationServiceServer).MarkRead(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: NotificationServiceMarkReadMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NotificationServiceServer).MarkRead(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
