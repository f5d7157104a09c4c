package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	controllers "github.com/phillip/pet-adoption-go/controllers"
	services "github.com/phillip/pet-adoption-go/services"
)

type Services struct {
	Pets      *services.PetService
	Campaigns *services.CampaignService
	Donations *services.DonationService
	Adoptions *services.AdoptionService
	Payments  *services.PaymentService

	// Images is optional; upload routes are only registered when set.
	Images controllers.ImageStore
}

func SetupRoutes(r *gin.Engine, s Services) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Pet Adoption Server is running")
	})

	// payments
	r.POST("/create-payment-intent", controllers.CreatePaymentIntent(s.Payments))

	// campaigns
	campaigns := r.Group("/donation-campaigns")
	{
		campaigns.POST("", controllers.CreateCampaign(s.Campaigns))
		campaigns.GET("", controllers.ListCampaigns(s.Campaigns))
		campaigns.GET("/:id", controllers.GetCampaign(s.Campaigns))
		campaigns.PUT("/:id", controllers.UpdateCampaign(s.Campaigns))
	}
	r.DELETE("/campaigns/:id", controllers.DeleteCampaign(s.Campaigns))
	r.GET("/my-campaigns", controllers.MyCampaigns(s.Campaigns))

	// pets
	pets := r.Group("/pets")
	{
		pets.POST("", controllers.AddPet(s.Pets))
		pets.GET("", controllers.ListPets(s.Pets))
		pets.GET("/:id", controllers.GetPet(s.Pets))
		pets.PUT("/:id", controllers.UpdatePet(s.Pets))
	}
	r.DELETE("/pet/:id", controllers.DeletePet(s.Pets))
	r.GET("/my-pets", controllers.MyPets(s.Pets))

	// append-only records
	r.POST("/adoptions", controllers.SubmitAdoption(s.Adoptions))
	r.POST("/donations", controllers.RecordDonation(s.Donations))

	if s.Images != nil {
		r.POST("/upload-image", controllers.UploadImage(s.Images))
		r.DELETE("/upload-image", controllers.DeleteImage(s.Images))
	}
}
