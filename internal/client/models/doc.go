// Package models defines the client-side data types of the EduRoot
// storefront: the signed-in user and language preference, auth responses,
// cart items, catalog books and payment orders.
package models
