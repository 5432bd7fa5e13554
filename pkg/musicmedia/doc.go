// Package musicmedia stores musician-uploaded media and ratings over a
// document store.
//
// The package binds each uploaded blob to an authoritative metadata record
// through a blob-first two-phase write, and keeps a denormalized rating
// aggregate (average, count) on each musician profile by recomputing it from
// the full rating set after every rating mutation.
//
// Persistence is pluggable: Repository implementations live under repo/
// (memory, mongo) and BlobStore implementations under storage/ (memory, fs,
// gridfs, s3). A thin HTTP surface lives under api/.
package musicmedia
