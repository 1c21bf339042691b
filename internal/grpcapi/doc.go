// Package grpcapi exposes buyer notifications over gRPC.
//
// The service is described with protobuf well-known types, so no generated
// code is needed: List takes a google.protobuf.Struct with buyer_id, limit
// and offset and returns a Struct holding a notifications list; MarkRead
// takes the notification ID as a google.protobuf.StringValue. Calls are
// authenticated with an access token in the "authorization" metadata key.
package grpcapi
