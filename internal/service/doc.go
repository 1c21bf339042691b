// Package service holds one service per bounded context: users and
// authentication, news, projects and tasks, and the shop (buyers,
// employees, goods, prices, deliveries, notifications, trade).
//
// Services validate input through the domain constructors, enforce
// ownership via Actor, and persist through store interfaces. Operations
// that touch several rows run inside store.RunInTransaction using the
// WithTx variants of each store. Errors from lower layers are wrapped with
// %w so the API can still match store.ErrNotFound, store.ErrDuplicate and
// domain.ErrValidation.
package service
