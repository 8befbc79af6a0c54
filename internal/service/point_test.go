package service

import (
	"context"
	"testing"

	"github.com/alexivanou/cityinfo-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_ListPoints(t *testing.T) {
	t.Run("City missing", func(t *testing.T) {
		cities := new(MockCityRepository)
		cities.On("CityExists", mock.Anything, 999).Return(false, nil)

		svc := newTestService(cities, new(MockPointRepository), new(MockMailService))
		_, err := svc.ListPoints(context.Background(), 999)
		assert.ErrorIs(t, err, ErrCityNotFound)
	})

	t.Run("Returns points", func(t *testing.T) {
		cities := new(MockCityRepository)
		points := new(MockPointRepository)
		cities.On("CityExists", mock.Anything, 3).Return(true, nil)
		points.On("ListForCity", mock.Anything, 3).Return([]model.PointOfInterest{
			{ID: 5, CityID: 3, Name: "Eiffel Tower"},
		}, nil)

		svc := newTestService(cities, points, new(MockMailService))
		result, err := svc.ListPoints(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Eiffel Tower", result[0].Name)
	})
}

func TestService_CreatePoint(t *testing.T) {
	t.Run("Valid payload", func(t *testing.T) {
		cities := new(MockCityRepository)
		points := new(MockPointRepository)
		cities.On("CityExists", mock.Anything, 3).Return(true, nil)
		points.On("Add", mock.Anything, 3, mock.AnythingOfType("*model.PointOfInterest")).
			Run(func(args mock.Arguments) {
				point := args.Get(2).(*model.PointOfInterest)
				point.ID = 7
				point.CityID = 3
			}).Return(nil)

		svc := newTestService(cities, points, new(MockMailService))
		created, err := svc.CreatePoint(context.Background(), 3, model.PointOfInterestForCreation{
			Name: "The Louvre", Description: strPtr("The world's largest museum"),
		})

		require.NoError(t, err)
		assert.Equal(t, 7, created.ID)
		assert.Equal(t, "The Louvre", created.Name)
	})

	t.Run("Missing name fails validation before any store call", func(t *testing.T) {
		svc := newTestService(new(MockCityRepository), new(MockPointRepository), new(MockMailService))
		_, err := svc.CreatePoint(context.Background(), 3, model.PointOfInterestForCreation{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "Name")
	})

	t.Run("Overlong name fails validation", func(t *testing.T) {
		svc := newTestService(new(MockCityRepository), new(MockPointRepository), new(MockMailService))
		long := make([]byte, 51)
		for i := range long {
			long[i] = 'x'
		}
		_, err := svc.CreatePoint(context.Background(), 3, model.PointOfInterestForCreation{Name: string(long)})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestService_ReplacePoint(t *testing.T) {
	t.Run("Replaces existing point", func(t *testing.T) {
		cities := new(MockCityRepository)
		points := new(MockPointRepository)
		cities.On("CityExists", mock.Anything, 3).Return(true, nil)
		points.On("GetForCity", mock.Anything, 3, 5).Return(&model.PointOfInterest{ID: 5, CityID: 3, Name: "Eiffel Tower"}, nil)
		points.On("Update", mock.Anything, model.PointOfInterest{
			ID: 5, CityID: 3, Name: "Tour Eiffel", Description: strPtr("Updated"),
		}).Return(true, nil)

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.ReplacePoint(context.Background(), 3, 5, model.PointOfInterestForUpdate{
			Name: "Tour Eiffel", Description: strPtr("Updated"),
		})

		require.NoError(t, err)
		points.AssertExpectations(t)
	})

	t.Run("Row deleted between read and write", func(t *testing.T) {
		cities := new(MockCityRepository)
		points := new(MockPointRepository)
		cities.On("CityExists", mock.Anything, 3).Return(true, nil)
		points.On("GetForCity", mock.Anything, 3, 5).Return(&model.PointOfInterest{ID: 5, CityID: 3, Name: "Eiffel Tower"}, nil)
		points.On("Update", mock.Anything, mock.AnythingOfType("model.PointOfInterest")).Return(false, nil)

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.ReplacePoint(context.Background(), 3, 5, model.PointOfInterestForUpdate{Name: "Tour Eiffel"})

		assert.ErrorIs(t, err, ErrPointNotFound)
	})
}

func TestService_PatchPoint(t *testing.T) {
	setup := func() (*MockCityRepository, *MockPointRepository) {
		cities := new(MockCityRepository)
		points := new(MockPointRepository)
		cities.On("CityExists", mock.Anything, 3).Return(true, nil)
		points.On("GetForCity", mock.Anything, 3, 5).Return(&model.PointOfInterest{
			ID: 5, CityID: 3, Name: "Eiffel Tower", Description: strPtr("A wrought iron lattice tower"),
		}, nil)
		return cities, points
	}

	t.Run("Partial patch keeps untouched fields", func(t *testing.T) {
		cities, points := setup()
		points.On("Update", mock.Anything, model.PointOfInterest{
			ID: 5, CityID: 3, Name: "Tour Eiffel", Description: strPtr("A wrought iron lattice tower"),
		}).Return(true, nil)

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.PatchPoint(context.Background(), 3, 5, []byte(`{"name":"Tour Eiffel"}`))

		require.NoError(t, err)
		points.AssertExpectations(t)
	})

	t.Run("Null description clears it", func(t *testing.T) {
		cities, points := setup()
		points.On("Update", mock.Anything, model.PointOfInterest{
			ID: 5, CityID: 3, Name: "Eiffel Tower", Description: nil,
		}).Return(true, nil)

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.PatchPoint(context.Background(), 3, 5, []byte(`{"description":null}`))

		require.NoError(t, err)
		points.AssertExpectations(t)
	})

	t.Run("Null name removes the required field and is rejected", func(t *testing.T) {
		cities, points := setup()

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.PatchPoint(context.Background(), 3, 5, []byte(`{"name":null}`))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "Name")
		points.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Row deleted between read and write", func(t *testing.T) {
		cities, points := setup()
		points.On("Update", mock.Anything, mock.AnythingOfType("model.PointOfInterest")).Return(false, nil)

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.PatchPoint(context.Background(), 3, 5, []byte(`{"name":"Tour Eiffel"}`))

		assert.ErrorIs(t, err, ErrPointNotFound)
	})

	t.Run("Invalid merged result is rejected without a write", func(t *testing.T) {
		cities, points := setup()

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.PatchPoint(context.Background(), 3, 5, []byte(`{"name":""}`))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		points.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Unknown field is rejected", func(t *testing.T) {
		cities, points := setup()

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.PatchPoint(context.Background(), 3, 5, []byte(`{"rating":5}`))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		points.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Point missing", func(t *testing.T) {
		cities := new(MockCityRepository)
		points := new(MockPointRepository)
		cities.On("CityExists", mock.Anything, 3).Return(true, nil)
		points.On("GetForCity", mock.Anything, 3, 99).Return(nil, nil)

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.PatchPoint(context.Background(), 3, 99, []byte(`{"name":"x"}`))

		assert.ErrorIs(t, err, ErrPointNotFound)
	})
}

func TestService_DeletePoint(t *testing.T) {
	t.Run("Delete sends notification", func(t *testing.T) {
		cities := new(MockCityRepository)
		points := new(MockPointRepository)
		mail := new(MockMailService)
		cities.On("CityExists", mock.Anything, 3).Return(true, nil)
		points.On("GetForCity", mock.Anything, 3, 5).Return(&model.PointOfInterest{ID: 5, CityID: 3, Name: "Eiffel Tower"}, nil)
		points.On("Delete", mock.Anything, 3, 5).Return(true, nil)
		mail.On("Send", "Point of interest deleted.", "Point of interest Eiffel Tower with id 5").Once()

		svc := newTestService(cities, points, mail)
		err := svc.DeletePoint(context.Background(), 3, 5)

		require.NoError(t, err)
		mail.AssertExpectations(t)
	})

	t.Run("Missing point", func(t *testing.T) {
		cities := new(MockCityRepository)
		points := new(MockPointRepository)
		cities.On("CityExists", mock.Anything, 3).Return(true, nil)
		points.On("GetForCity", mock.Anything, 3, 99).Return(nil, nil)

		svc := newTestService(cities, points, new(MockMailService))
		err := svc.DeletePoint(context.Background(), 3, 99)

		assert.ErrorIs(t, err, ErrPointNotFound)
	})
}
