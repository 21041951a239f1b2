package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/apitest/test/api"
)

var _ = Describe("User Management", Label(api.LabelAPI), func() {
	Context("When creating a user", func() {
		It("should return the created user", Label(api.LabelSmoke), func() {
			// Given: a well-formed user payload with a unique username
			payload := api.NewUniqueUserPayload(credentials).Build()

			// When: I create the user
			response, err := client.CreateUser(ctx, payload)
			Expect(err).NotTo(HaveOccurred())
			api.ScheduleUserCleanup(client, ctx, response)

			// Then: the user is created with the submitted username
			Expect(response).To(api.HaveStatus(http.StatusCreated))

			body, err := response.Map()
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(HaveKeyWithValue("username", payload["username"]))
		})

		It("should be retrievable after creation", Label(api.LabelRegression), func() {
			user := api.CreateUserWithCleanup(client, ctx, api.NewUniqueUserPayload(credentials).Build())

			response, err := client.GetUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(response).To(api.HaveStatus(http.StatusOK))

			var fetched api.User
			Expect(response.JSON(&fetched)).To(Succeed())
			Expect(fetched.ID).To(Equal(user.ID))
			Expect(fetched.Username).To(Equal(user.Username))
		})
	})

	Context("When deleting a user", func() {
		It("should no longer be found", Label(api.LabelRegression), func() {
			user := api.CreateUserWithCleanup(client, ctx, api.NewUniqueUserPayload(credentials).Build())

			Expect(client.DeleteUser(ctx, user.ID)).To(Succeed())

			response, err := client.GetUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(response).To(api.HaveStatus(http.StatusNotFound))
		})
	})
})
