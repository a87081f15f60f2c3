// Package mongodb stores users and blogs in MongoDB. A single Store implements
// both userservice.Repository and blogservice.Repository over the "users" and
// "blogs" collections. Blog ownership is kept twice: the blog's "user" field
// and the owner's ordered "blogs" array.
package mongodb
