// Package rating provides the DeliveryRating aggregate: a customer's one-time
// rating of a delivered order, scoped to the courier who delivered it.
//
// Ratings are append-only. A rating can only be created for a delivered order
// with an assigned courier, carries a star value in [1,5] and an optional
// comment, and snapshots order metadata at creation so later reads do not
// depend on the order record. The one-rating-per-order rule is enforced by the
// persistence layer's unique constraint.
package rating
