// Package s3 provides Amazon S3 implementations of blobstore.Store.
//
// # Usage
//
//	store, err := s3.NewFromDefaultConfig(ctx, "my-bucket", "pointmerge/")
//	if err != nil {
//	    return err
//	}
//	err = snapshot.Publish(ctx, store, "merged-0001.pmrg", dst)
//
// S3 has no compare-and-swap, so concurrent publishers should wrap the store
// in a DDBCommitStore, which keeps the CURRENT pointer in a DynamoDB table
// with conditional writes.
//
// # Features
//
//   - Range reads for partial fetches
//   - CRC32C-checked single-part uploads, multipart uploads for large blobs
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
