package sqlinline

const QInsertPhoto = `--sql ece4c99b-b94d-4aa1-a417-5858d9897295
insert into photos (id, event_id, description, image_file, slug, position)
values ($1::uuid, $2::uuid, $3::text, $4::text, $5::text, $6::int);
`

const QSelectPhotoByID = `--sql 5ddd5911-6c66-425e-bab6-64df3cff6474
select id, event_id, description, image_file, slug, position
from photos
where id = $1::uuid
limit 1;
`

const QListPhotosByEvent = `--sql 3121f5e1-6b64-45d5-94b0-187c7e47e4ae
select id, event_id, description, image_file, slug, position
from photos
where event_id = $1::uuid
order by position, id;
`

const QListPhotoPositions = `--sql 42d93d5f-ada9-4992-8d49-8ca131ca0e09
select id, position
from photos
where event_id = $1::uuid
order by position, id
for update;
`

const QUpdatePhotoPosition = `--sql 45e6bc57-1391-4879-a7f0-323a12df176d
update photos
set position = $2::int
where id = $1::uuid;
`

const QDeletePhoto = `--sql 1a45f83d-5a62-4117-804f-adaab207e14d
delete from photos
where id = $1::uuid;
`
