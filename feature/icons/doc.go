// Package icons caches game artwork in the storage bucket.
//
// An image URL maps to the object icons/<md5(url)><ext>. The first request
// downloads the image and stores it; later requests stream it from the bucket.
//
// # HTTP Endpoints
//
//   - GET /icons?url=... : Streams the icon (X-Cache: HIT or MISS).
//   - GET /icons/size : Count and total size of cached icons.
//   - DELETE /icons : Removes every cached icon.
package icons
