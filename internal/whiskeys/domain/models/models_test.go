package models_test

import (
	"errors"
	"testing"

	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/stretchr/testify/require"
)

var owner = models.Requester{UserID: 7, Username: "tester"}

func TestNewAttribute(t *testing.T) {
	tag, err := models.NewAttribute(models.KindTag, owner, " Bourbon ")
	require.NoError(t, err)
	require.Equal(t, "Bourbon", tag.Name)
	require.Equal(t, "Bourbon", tag.String())
	require.Equal(t, int64(7), tag.OwnerID)
	require.Equal(t, models.KindTag, tag.Kind)

	for _, name := range []string{"", "   "} {
		_, err = models.NewAttribute(models.KindPlace, owner, name)

		var verr models.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Contains(t, verr.Fields, "name")
	}
}

func TestNewWhiskey(t *testing.T) {
	w, err := models.NewWhiskey(owner, "Jack Daniels", "Whiskey")
	require.NoError(t, err)
	require.Equal(t, "Jack Daniels", w.String())
	require.Empty(t, w.TagIDs)
	require.Empty(t, w.PlaceIDs)
	require.Nil(t, w.Year)
	require.Nil(t, w.Price)
	require.Empty(t, w.Link)
	require.Empty(t, w.Image)

	_, err = models.NewWhiskey(owner, "", " ")

	var verr models.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	require.Equal(t, "validation failed: brand: This field may not be blank.; style: This field may not be blank.", err.Error())
}
