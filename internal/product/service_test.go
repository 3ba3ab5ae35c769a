package product_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bitebudget/internal/product"
)

func TestService_List(t *testing.T) {
	type args struct {
		filter product.Filter
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *product.MockRepository)
		want      *product.Page
		wantErr   bool
	}

	milk := &product.Product{Name: "Milk", Category: "Dairy"}

	tests := []testCase{
		{
			name: "DefaultsPaging",
			args: args{filter: product.Filter{Category: " Dairy "}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					ListProducts(gomock.Any(), product.Filter{Category: "Dairy", Page: 1, PerPage: 20}).
					Return([]*product.Product{milk}, 41, nil)
			},
			want: &product.Page{Products: []*product.Product{milk}, Total: 41, Pages: 3, CurrentPage: 1, PerPage: 20},
		},
		{
			name: "ClampsPerPage",
			args: args{filter: product.Filter{Page: 2, PerPage: 1000, Search: "mi"}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					ListProducts(gomock.Any(), product.Filter{Search: "mi", Page: 2, PerPage: 100}).
					Return(nil, 0, nil)
			},
			want: &product.Page{Products: []*product.Product{}, Total: 0, Pages: 0, CurrentPage: 2, PerPage: 100},
		},
		{
			name: "RepoError",
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := product.NewService(repo, nil).List(context.Background(), tt.args.filter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CachesCatalogReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache, err := product.NewCache(100, time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	repo := product.NewMockRepository(ctrl)
	repo.EXPECT().Categories(gomock.Any()).Return([]string{"Dairy", "Produce"}, nil).Times(1)
	repo.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(nil, 0, nil).Times(2)

	svc := product.NewService(repo, cache)

	for range 3 {
		cats, err := svc.Categories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Dairy", "Produce"}, cats)
	}

	_, err = svc.List(context.Background(), product.Filter{Page: 1})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), product.Filter{Page: 1})
	require.NoError(t, err)

	cache.Purge()

	_, err = svc.List(context.Background(), product.Filter{Page: 1})
	require.NoError(t, err)
}

func TestService_Recommendations(t *testing.T) {
	svc := product.NewService(nil, nil)

	got := svc.Recommendations()
	require.Len(t, got, 4)

	got[0].ProductName = "mutated"
	assert.Equal(t, "Organic Almond Milk", svc.Recommendations()[0].ProductName)
}
