// Package blobstore abstracts the storage that snapshots are published to.
//
// A Store holds immutable, named blobs. Implementations must be safe for
// concurrent use and Put must be atomic: readers see either the previous
// content or the new one, never a partial write.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic rename on Put
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - s3.DDBCommitStore: S3 plus a DynamoDB commit log for the CURRENT pointer
//   - minio.Store: MinIO and other S3-compatible services
package blobstore
