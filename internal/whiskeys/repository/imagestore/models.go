package imagestore

import "errors"

var ErrNotImage = errors.New("upload a valid image, the file is either not an image or a corrupted image")
