package bill

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SubmissionService", func() {
	var (
		store   *mockStore
		client  *mockBillsClient
		alerter *mockAlerter
		routes  []string
		service *SubmissionService
	)

	BeforeEach(func() {
		client = &mockBillsClient{
			createRes: CreateResult{
				FileURL:  "https://test.com/file.png",
				FileName: "file.png",
				Key:      "1234",
			},
		}
		store = &mockStore{client: client}
		alerter = &mockAlerter{}
		routes = nil
		service = NewSubmissionService(store, "employee@test.tld", func(route string) {
			routes = append(routes, route)
		}, alerter)
	})

	Describe("HandleFileSelected", func() {
		var (
			name      string
			selection FileSelection
			err       error
		)

		JustBeforeEach(func() {
			selection, err = service.HandleFileSelected(context.Background(), name, []byte("image"))
		})

		When("the file is a png", func() {
			BeforeEach(func() {
				name = "image.png"
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should accept the selection", func() {
				Expect(selection.Accepted).To(BeTrue())
			})

			It("should upload the receipt once", func() {
				Expect(client.createCalls).To(Equal(1))
			})

			It("should send the employee email with the upload", func() {
				Expect(client.lastCreate.Email).To(Equal("employee@test.tld"))
				Expect(client.lastCreate.FileName).To(Equal("image.png"))
			})

			It("should hold the stored file location on the draft", func() {
				Expect(selection.FileURL).To(Equal("https://test.com/file.png"))
				Expect(selection.FileName).To(Equal("image.png"))
			})

			It("should not raise an alert", func() {
				Expect(alerter.messages).To(BeEmpty())
			})
		})

		When("the extension is uppercase", func() {
			BeforeEach(func() {
				name = "PHOTO.JPEG"
			})

			It("should accept the selection", func() {
				Expect(selection.Accepted).To(BeTrue())
				Expect(client.createCalls).To(Equal(1))
			})
		})

		When("the file is a pdf", func() {
			BeforeEach(func() {
				name = "document.pdf"
			})

			It("should reject the selection", func() {
				Expect(selection.Accepted).To(BeFalse())
			})

			It("should raise the rejection alert verbatim", func() {
				Expect(alerter.messages).To(Equal([]string{
					"Veuillez télécharger un fichier avec une extension jpg, jpeg ou png.",
				}))
			})

			It("should not attempt an upload", func() {
				Expect(client.createCalls).To(BeZero())
			})

			It("should return an empty selection", func() {
				Expect(selection.FileURL).To(BeEmpty())
				Expect(selection.FileName).To(BeEmpty())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})
		})

		When("a rejected file follows an accepted one", func() {
			BeforeEach(func() {
				_, accErr := service.HandleFileSelected(context.Background(), "image.png", []byte("image"))
				Expect(accErr).NotTo(HaveOccurred())
				name = "document.pdf"
			})

			It("should drop the earlier upload from the draft", func() {
				Expect(service.HandleSubmit(context.Background(), BillForm{})).To(Succeed())
				Expect(client.lastUpdate.FileURL).To(BeEmpty())
				Expect(client.lastUpdate.FileName).To(BeEmpty())
			})
		})

		When("the upload fails", func() {
			BeforeEach(func() {
				name = "image.png"
				client.createErr = errors.New("store down")
			})

			It("should still accept the selection", func() {
				Expect(selection.Accepted).To(BeTrue())
			})

			It("should return the wrapped error", func() {
				Expect(err).To(MatchError(ContainSubstring("store down")))
			})

			It("should hold no file location", func() {
				Expect(selection.FileURL).To(BeEmpty())
			})
		})

		When("no store is configured", func() {
			BeforeEach(func() {
				service = NewSubmissionService(nil, "employee@test.tld", nil, alerter)
				name = "image.png"
			})

			It("should accept without uploading", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(selection.Accepted).To(BeTrue())
				Expect(client.createCalls).To(BeZero())
			})
		})
	})

	Describe("HandleSubmit", func() {
		var (
			form BillForm
			err  error
		)

		BeforeEach(func() {
			form = BillForm{
				Type:       "Transports",
				Name:       "Train ticket",
				Amount:     "100",
				Date:       "2024-07-19",
				VAT:        "20",
				Pct:        "20",
				Commentary: "Business trip",
			}
		})

		JustBeforeEach(func() {
			err = service.HandleSubmit(context.Background(), form)
		})

		When("a receipt was uploaded first", func() {
			BeforeEach(func() {
				_, selErr := service.HandleFileSelected(context.Background(), "file.png", []byte("image"))
				Expect(selErr).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should persist the bill exactly once", func() {
				Expect(client.updateCalls).To(Equal(1))
			})

			It("should persist under the upload key", func() {
				Expect(client.lastKey).To(Equal("1234"))
			})

			It("should build the bill from the form and the held upload", func() {
				Expect(client.lastUpdate).To(Equal(Bill{
					Email:      "employee@test.tld",
					Type:       "Transports",
					Name:       "Train ticket",
					Amount:     100,
					Date:       "2024-07-19",
					VAT:        "20",
					Pct:        20,
					Commentary: "Business trip",
					FileURL:    "https://test.com/file.png",
					FileName:   "file.png",
					Status:     StatusPending,
				}))
			})

			It("should navigate to the bills listing exactly once", func() {
				Expect(routes).To(Equal([]string{RouteBills}))
			})
		})

		When("no receipt was uploaded", func() {
			It("should tolerate empty file fields", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(client.lastUpdate.FileURL).To(BeEmpty())
				Expect(client.lastUpdate.FileName).To(BeEmpty())
			})

			It("should still navigate to the bills listing", func() {
				Expect(routes).To(Equal([]string{RouteBills}))
			})
		})

		When("the pct field is empty", func() {
			BeforeEach(func() {
				form.Pct = ""
			})

			It("should default pct to 20", func() {
				Expect(client.lastUpdate.Pct).To(Equal(20))
			})
		})

		When("the pct field is negative", func() {
			BeforeEach(func() {
				form.Pct = "-5"
			})

			It("should default pct to 20", func() {
				Expect(client.lastUpdate.Pct).To(Equal(20))
			})
		})

		When("the amount field is unparsable", func() {
			BeforeEach(func() {
				form.Amount = "a lot"
			})

			It("should send a zero amount", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(client.lastUpdate.Amount).To(BeZero())
			})
		})

		When("the persist call fails", func() {
			BeforeEach(func() {
				client.updateErr = errors.New("store down")
			})

			It("should return the wrapped error", func() {
				Expect(err).To(MatchError(ContainSubstring("store down")))
			})

			It("should not navigate", func() {
				Expect(routes).To(BeEmpty())
			})
		})

		When("no store is configured", func() {
			BeforeEach(func() {
				service = NewSubmissionService(nil, "employee@test.tld", func(route string) {
					routes = append(routes, route)
				}, alerter)
			})

			It("should be a no-op", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(client.updateCalls).To(BeZero())
				Expect(routes).To(BeEmpty())
			})
		})
	})
})
