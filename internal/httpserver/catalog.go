package httpserver

import (
	"errors"
	"net/http"

	"blandselv-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

func listDrinksHandler(catalog CatalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		drinks, err := catalog.ListDrinks(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "list drinks failed"})
			return
		}
		out := make([]domain.PublicDrink, 0, len(drinks))
		for _, d := range drinks {
			out = append(out, d.Public())
		}
		c.JSON(http.StatusOK, gin.H{"drinks": out})
	}
}

func getDrinkHandler(catalog CatalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		drink, err := catalog.GetDrink(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "drink not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "get drink failed"})
			return
		}
		c.JSON(http.StatusOK, drink.Public())
	}
}

func listPackagesHandler(catalog CatalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		packages, err := catalog.ListPackages(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "list packages failed"})
			return
		}
		if packages == nil {
			packages = []domain.MixPackage{}
		}
		c.JSON(http.StatusOK, gin.H{"packages": packages})
	}
}

func getPackageHandler(catalog CatalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		pkg, err := catalog.GetPackage(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "package not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "get package failed"})
			return
		}
		c.JSON(http.StatusOK, pkg)
	}
}
