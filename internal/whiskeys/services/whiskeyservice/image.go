package whiskeyservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/imagestore"
)

// AttachImage stores data as the whiskey's image, replacing the previous
// one. Data that does not decode as an image changes nothing.
func (ws *WhiskeyService) AttachImage(ctx context.Context,
	requester models.Requester, id int64, data []byte,
) (models.Whiskey, error) {
	w, err := ws.get(ctx, requester, id)
	if err != nil {
		return models.Whiskey{}, err
	}

	format, err := ws.images.Detect(data)
	if err != nil {
		if errors.Is(err, imagestore.ErrNotImage) {
			return models.Whiskey{}, models.NewValidationError("image", err.Error())
		}

		return models.Whiskey{}, fmt.Errorf("detect image error: %w", err)
	}

	name, err := ws.images.Save(data, format)
	if err != nil {
		return models.Whiskey{}, fmt.Errorf("save image error: %w", err)
	}

	previous, err := ws.whiskeys.SetImage(ctx, requester.UserID, id, name)
	if err != nil {
		if errD := ws.images.Delete(name); errD != nil {
			ws.lg.Errorf("delete orphaned image %s error: %s", name, errD.Error())
		}

		return models.Whiskey{}, ws.writeError("set image", err)
	}

	if previous != "" && previous != name {
		if err := ws.images.Delete(previous); err != nil {
			ws.lg.Warnf("delete replaced image %s error: %s", previous, err.Error())
		}
	}

	w.Image = name

	return w, nil
}
